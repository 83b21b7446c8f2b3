package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// ReceiptService renders printable HTML for customer receipts, kitchen slips
// and QR bills. Pure presentation over resolved orders.
type ReceiptService struct {
	orders OrderStore
}

// NewReceiptService creates a new receipt service
func NewReceiptService(orders OrderStore) *ReceiptService {
	return &ReceiptService{orders: orders}
}

type receiptLine struct {
	Qty    int
	Name   string
	Amount string
}

type receiptData struct {
	Invoice string
	Date    string
	Lines   []receiptLine
	Total   string
	QR      template.URL
}

type kitchenData struct {
	Heading string
	Lines   []receiptLine
	Notes   string
}

// PaymentQR encodes the payment payload for an order as a PNG data URL. The
// amount defaults to the order's total.
func (s *ReceiptService) PaymentQR(ctx context.Context, id uuid.UUID, amount *float64) (string, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	value := order.Total
	if amount != nil {
		value = *amount
	}

	return paymentQRDataURL(id, value)
}

// CustomerReceipt renders the customer receipt with an inline payment QR
func (s *ReceiptService) CustomerReceipt(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.GetResolved(ctx, id)
	if err != nil {
		return "", err
	}

	qr, err := paymentQRDataURL(id, order.Total)
	if err != nil {
		return "", err
	}

	data := receiptData{
		Invoice: shortID(id),
		Date:    order.CreatedAt.Format("02/01/2006 15:04"),
		Total:   formatNumber(order.Total),
		QR:      template.URL(qr),
	}
	for _, item := range order.Items {
		line := receiptLine{Qty: item.Qty, Name: "-"}
		if item.Menu != nil {
			line.Name = item.Menu.Name
			line.Amount = formatNumber(item.Menu.Price * float64(item.Qty))
		}
		data.Lines = append(data.Lines, line)
	}

	return render(customerTemplate, data)
}

// KitchenSlip renders the kitchen order slip: quantities and names only, no
// prices
func (s *ReceiptService) KitchenSlip(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.GetResolved(ctx, id)
	if err != nil {
		return "", err
	}

	heading := "Take away"
	if order.OrderType == models.OrderTypeDineIn {
		heading = "Table - -"
		if order.Table != nil {
			heading = fmt.Sprintf("Table - %d", order.Table.TableNumber)
		}
	}

	data := kitchenData{Heading: heading, Notes: order.Notes}
	for _, item := range order.Items {
		line := receiptLine{Qty: item.Qty, Name: "-"}
		if item.Menu != nil {
			line.Name = item.Menu.Name
		}
		data.Lines = append(data.Lines, line)
	}

	return render(kitchenTemplate, data)
}

// QRBill renders a standalone payment QR page
func (s *ReceiptService) QRBill(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	qr, err := paymentQRDataURL(id, order.Total)
	if err != nil {
		return "", err
	}

	data := receiptData{
		Invoice: shortID(id),
		Date:    order.CreatedAt.Format("02/01/2006 15:04"),
		Total:   formatNumber(order.Total),
		QR:      template.URL(qr),
	}

	return render(qrBillTemplate, data)
}

func paymentQRDataURL(id uuid.UUID, amount float64) (string, error) {
	payload := fmt.Sprintf("PAY|ORDER:%s|AMOUNT:%s", id, strconv.FormatFloat(amount, 'f', -1, 64))
	png, err := qrcode.Encode(payload, qrcode.Medium, 300)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment QR: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// formatNumber renders an amount with thousand separators, dropping the
// fraction when it is whole
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

var customerTemplate = template.Must(template.New("customer").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Receipt {{.Invoice}}</title>
<style>
  body { font-family: monospace; width:72mm; margin:0; padding:6px; font-size:12px; }
  .center{text-align:center}
  .bold{font-weight:700}
  .divider{border-top:1px dashed #000; margin:6px 0;}
  table{width:100%; border-collapse:collapse}
  td { padding:3px 0; vertical-align:top; }
  .right{text-align:right}
  .small{font-size:11px}
</style>
</head>
<body>
  <div class="center bold">GOLDEN LOTUS RESTAURANT</div>
  <div class="center small">No.22, Mandalay</div>
  <div class="divider"></div>

  <div>Invoice: {{.Invoice}}</div>
  <div>Date: {{.Date}}</div>
  <div class="divider"></div>

  <table>
    {{range .Lines}}<tr>
      <td>{{.Qty}} x {{.Name}}</td>
      <td class="right">{{.Amount}} MMK</td>
    </tr>
    {{end}}
  </table>

  <div class="divider"></div>
  <table>
    <tr><td class="bold">Total</td><td class="right bold">{{.Total}} MMK</td></tr>
  </table>

  <div class="divider"></div>
  <div class="center bold">SCAN TO PAY</div>
  <div class="center"><img src="{{.QR}}" style="width:240px; height:auto; display:block; margin:6px auto;" /></div>

  <div class="divider"></div>
  <div class="center small">Thank you! GOLDEN LOTUS RESTAURANT</div>

  <script>
    window.print();
    setTimeout(function(){ window.close(); }, 600);
  </script>
</body>
</html>
`))

var kitchenTemplate = template.Must(template.New("kitchen").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"/><title>Kitchen Order</title>
<style>
  body { font-family: monospace; width:72mm; margin:0; padding:6px; font-size:14px;}
  .center{text-align:center}
  .big{font-size:16px; font-weight:700}
  .divider{border-top:1px dashed #000; margin:6px 0;}
  .notes{font-size:12px}
</style>
</head>
<body>
  <div class="center big">KITCHEN ORDER</div>
  <div class="center">{{.Heading}}</div>
  <div class="divider"></div>

  {{range .Lines}}<div style="font-weight:700; font-size:15px; margin-bottom:6px;">
    {{.Qty}} x {{.Name}}
  </div>
  {{end}}

  {{if .Notes}}<div class="notes">notes - {{.Notes}}</div>{{end}}

  <div class="divider"></div>
  <div class="center">---</div>

  <script>
    window.print();
    setTimeout(function(){ window.close(); }, 500);
  </script>
</body>
</html>
`))

var qrBillTemplate = template.Must(template.New("qrbill").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"/><title>QR Bill {{.Invoice}}</title>
<style>
  body{font-family:monospace; width:80mm; padding:6px; margin:0}
  .center{text-align:center}
  .divider{border-top:1px dashed #000; margin:6px 0;}
  img.qr{display:block; margin: 0 auto; width:260px;}
</style>
</head>
<body>
  <div class="center"><b>QR BILL</b></div>
  <div class="center">Invoice: {{.Invoice}}</div>
  <div class="center small">{{.Date}}</div>
  <div class="divider"></div>

  <div>Total: <b>{{.Total}} MMK</b></div>
  <div class="divider"></div>

  <div class="center">Scan to Pay</div>
  <img class="qr" src="{{.QR}}" />

  <div class="divider"></div>
  <div class="center">Thank you</div>

  <script>
    window.print();
    setTimeout(function(){ window.close(); }, 700);
  </script>
</body>
</html>
`))
