// Package sheet appends completed orders to the Google Sheets ledger.
// Every order becomes one row inserted right under the header, so the
// newest purchase is always at the top of the sheet.
package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skeemans/cafebot/internal/config"
	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/order"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// timestampLayout renders order time as "HH:MM DD-MM-YYYY".
const timestampLayout = "15:04 02-01-2006"

// Ledger writes order rows into one worksheet of one spreadsheet.
type Ledger struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
	loc           *time.Location
	now           func() time.Time
}

// New builds a Ledger from configuration. The credentials file is optional:
// without it the client falls back to application default credentials.
func New(ctx context.Context, cfg config.SheetConfig) (*Ledger, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load ledger timezone %q: %w", cfg.Timezone, err)
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build sheets client: %w", err)
	}

	return &Ledger{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		sheetID:       cfg.SheetID,
		loc:           loc,
		now:           time.Now,
	}, nil
}

// Append inserts a blank row at index 2 and fills it with the order fields.
// Two API calls, matching how the sheet is laid out: row 1 is the header,
// row 2 is the latest order.
func (l *Ledger) Append(ctx context.Context, o order.Order) error {
	started := time.Now()

	insert := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    l.sheetID,
					Dimension:  "ROWS",
					StartIndex: 1,
					EndIndex:   2,
				},
			},
		}},
	}
	if _, err := l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, insert).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}

	values := &sheets.ValueRange{Values: [][]interface{}{l.row(o)}}
	target := fmt.Sprintf("'%s'!A2:F2", l.sheetName)
	_, err := l.svc.Spreadsheets.Values.
		Update(l.spreadsheetID, target, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}

	logger.Info(ctx, "sheet", "ledger.append",
		slog.String("status", "ok"),
		slog.String("order_id", o.ID),
		slog.String("product", logger.Sanitize(o.ProductName)),
		slog.Int("row", 2),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(started)).Milliseconds()),
	)
	return nil
}

// row assembles the ledger columns A..F in the fixed order the sheet expects.
func (l *Ledger) row(o order.Order) []interface{} {
	placed := o.PlacedAt
	if placed.IsZero() {
		placed = l.now()
	}
	return []interface{}{
		o.ClientFullName,
		o.ProductName,
		o.ProductAmount,
		placed.In(l.loc).Format(timestampLayout),
		string(o.PaymentMethod),
		o.MoneyAmount,
	}
}
