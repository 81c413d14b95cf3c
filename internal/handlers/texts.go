package handlers

// Reply keyboard labels double as text triggers: pressing a reply button
// sends its label as a plain message.
const (
	triggerMenu = "Меню"
	triggerBuy  = "Купити"
)

// Callback keys for the inline purchase buttons.
const (
	cbCard   = "buy_card"
	cbCash   = "buy_cash"
	cbCancel = "cancel"
)

// Inline button labels shown to the customer.
const (
	btnCard   = "Карта 💳"
	btnCash   = "Готівка 💸"
	btnCancel = "Відмінити"
)

const (
	textChoose        = "Зроби свій вибір: "
	textMenuCaption   = "Ось будь ласочка наше меню"
	textAskProduct    = "😋 Зголоднів? Напиши назву смаколика, що ти хочеш придбати (ОБОВ'ЯЗКОВО вказати об'єм і смак)"
	textAskAmount     = "👌🏼 Добре. Тепер напиши кількість товару будь ласка! 👇🏼"
	textAskPayment    = "👍🏼 Чудово. Далі обери спосіб оплати!"
	textCardNumber    = "Номер карти для оплати покупки: "
	textCashRegister  = "Покладіть готівку у касу будь ласка! 💰"
	textAskMoney      = "Введіть внесену суму 🔢:"
	textAskClientName = "Введіть своє прізвище та ім'я 👇🏼: "
	textOrderSaved    = "✅ Покупка успішно записана! А вам смачного! 😘"
	textGoodbye       = "До зустрічі! 🙏🏼"
)
