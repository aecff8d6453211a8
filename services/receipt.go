package services

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"
	"unicode/utf8"

	"go-restaurant-pos/models"

	"github.com/shopspring/decimal"
)

const receiptWidth = 44

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": money,
	"line":  func() string { return strings.Repeat("-", receiptWidth) },
	"amount": func(l models.CartLine) string {
		return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2)
	},
	"clip": clip,
	"pad":  pad,
}).Parse(`{{.Venue}}
Bill    {{.Bill.BillNumber}}
Date    {{.Bill.CreatedAt.Format "2006-01-02 15:04"}}
{{- if .Bill.OrderID}}
Order   {{.Bill.OrderID}}{{end}}
Guest   {{.Bill.CustomerName}} ({{.Bill.CustomerNumber}})
{{line}}
{{printf "%-26s %4s %12s" "Item" "Qty" "Amount"}}
{{range .Bill.CartItems}}{{pad (clip .Name 26) 26}} {{printf "%4d %12s" .Quantity (amount .)}}
{{end}}{{line}}
{{printf "%-31s %12s" "Subtotal" (money .Bill.SubTotal)}}
{{printf "%-31s %12s" "Tax (10%)" (money .Bill.Tax)}}
{{printf "%-31s %12s" "Total" (money .Bill.TotalAmount)}}
{{line}}
Paid by {{.Bill.PaymentMode}}
`))

func money(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

// clip shortens s to n runes, marking the cut with a tilde.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

// pad left-aligns s in a column n runes wide.
func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// RenderReceipt returns the printable receipt for bill.
func RenderReceipt(venue string, bill models.Bill) (string, error) {
	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, struct {
		Venue string
		Bill  models.Bill
	}{venue, bill})
	if err != nil {
		return "", fmt.Errorf("render receipt %s: %w", bill.BillNumber, err)
	}
	return buf.String(), nil
}

// receiptPath files receipts by day, e.g. receipts/2026/03/01/BILL-20260301-0001.txt.
func receiptPath(bill models.Bill) string {
	return path.Join("receipts", bill.CreatedAt.Format("2006/01/02"), bill.BillNumber+".txt")
}
