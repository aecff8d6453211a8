package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"go-restaurant-pos/config"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	tableParam    = "tableNo"
	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// TableService ties dining tables to QR payloads of the form
// QR_BASE_URL?tableNo=N.
type TableService struct {
	tables  []config.TableSpec
	baseURL string
	orders  repositories.OrderRepository
}

func NewTableService(tables []config.TableSpec, baseURL string, orders repositories.OrderRepository) *TableService {
	return &TableService{tables: tables, baseURL: baseURL, orders: orders}
}

// ResolveTable reads the table number out of a QR payload. Any number from 1
// up is accepted whether or not it is a configured table.
func (s *TableService) ResolveTable(payload string) (int, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return 0, helpers.Invalid("qr payload is empty")
	}
	u, err := url.Parse(payload)
	if err != nil {
		return 0, helpers.Invalid("qr payload is not a URL: %v", err)
	}
	raw := u.Query().Get(tableParam)
	if raw == "" {
		return 0, helpers.Invalid("qr payload has no %s", tableParam)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, helpers.Invalid("qr payload %s %q is not a table number", tableParam, raw)
	}
	return n, nil
}

func (s *TableService) PayloadFor(tableNo int) (string, error) {
	if tableNo < 1 {
		return "", helpers.Invalid("table number must be at least 1")
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", helpers.Invalid("QR_BASE_URL %q is not a URL: %v", s.baseURL, err)
	}
	q := u.Query()
	q.Set(tableParam, strconv.Itoa(tableNo))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// QRPNG renders the payload for tableNo as a size×size PNG.
func (s *TableService) QRPNG(tableNo, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < minQRSize || size > maxQRSize {
		return nil, helpers.Invalid("qr size must be between %d and %d", minQRSize, maxQRSize)
	}
	payload, err := s.PayloadFor(tableNo)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// ListTables returns the configured tables with the number of orders still
// open on each.
func (s *TableService) ListTables(ctx context.Context) ([]models.DiningTable, error) {
	counts, err := s.orders.CountOpenByTable(ctx)
	if err != nil {
		return nil, helpers.Persistence("count open orders", err)
	}
	out := make([]models.DiningTable, 0, len(s.tables))
	for _, t := range s.tables {
		payload, err := s.PayloadFor(t.Number)
		if err != nil {
			return nil, err
		}
		out = append(out, models.DiningTable{
			TableNumber: t.Number,
			Seats:       t.Seats,
			QRPayload:   payload,
			OpenOrders:  counts[t.Number],
		})
	}
	return out, nil
}

func (s *TableService) Tables() []config.TableSpec { return s.tables }
