package present

import (
	"strconv"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

// View is the render state a consumer should show for a poll state.
type View string

const (
	ViewLoading   View = "loading"
	ViewError     View = "error"
	ViewEmpty     View = "empty"
	ViewPopulated View = "populated"
)

// User-facing messages for the non-populated views.
const (
	Title          = "Market Data"
	MessageLoading = "Loading..."
	MessageError   = "API Connection Error"
	MessageEmpty   = "No Market Data Found"
)

// SelectView picks the view for st. The error view wins over everything; the loading view only
// shows while nothing is held, so a refresh over existing data never flickers.
func SelectView(st state.PollState) View {
	switch {
	case st.Err:
		return ViewError
	case len(st.Records) == 0 && st.Loading:
		return ViewLoading
	case len(st.Records) == 0:
		return ViewEmpty
	default:
		return ViewPopulated
	}
}

// Message returns the banner text for v, or "" for the populated view.
func (v View) Message() string {
	switch v {
	case ViewLoading:
		return MessageLoading
	case ViewError:
		return MessageError
	case ViewEmpty:
		return MessageEmpty
	default:
		return ""
	}
}

// Row is one display line: the formatted instrument attributes plus its color class.
type Row struct {
	ID       string          `json:"id"`
	Current  string          `json:"current"`
	High     string          `json:"high"`
	Low      string          `json:"low"`
	Open     string          `json:"open"`
	PERatio  string          `json:"peRatio"`
	Change   float64         `json:"change"`
	Category market.Category `json:"category"`
	Class    string          `json:"class"`
}

// Columns names the row attributes in display order.
var Columns = []string{"ID", "Current", "High", "Low", "Open", "P/E"}

// Rows builds display rows for every held record, in snapshot order. Records stay visible
// alongside the error banner when a later cycle failed.
func Rows(st state.PollState) []Row {
	rows := make([]Row, 0, len(st.Records))
	for _, rec := range st.Records {
		cat := rec.Category()
		rows = append(rows, Row{
			ID:       string(rec.ID),
			Current:  formatPrice(rec.Current),
			High:     formatPrice(rec.High),
			Low:      formatPrice(rec.Low),
			Open:     formatPrice(rec.Open),
			PERatio:  formatPrice(rec.PERatio),
			Change:   rec.Change,
			Category: cat,
			Class:    cat.Color(),
		})
	}
	return rows
}

// Cells returns the row's attributes in Columns order.
func (r Row) Cells() []string {
	return []string{r.ID, r.Current, r.High, r.Low, r.Open, r.PERatio}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
