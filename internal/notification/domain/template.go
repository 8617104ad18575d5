package domain

import (
	"bytes"
	"fmt"
	"html/template"

	orderdom "github.com/tokopasar/storefront/internal/order/domain"
)

var confirmationTmpl = template.Must(template.New("order-confirmation").Parse(`<html>
<body>
  <h2>Thank you for your order, {{.Customer.Name}}!</h2>
  <p>Order <strong>#{{.Number}}</strong> at {{.StoreName}} has been received and is being prepared.</p>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.Subtotal}}</td>
    </tr>
    {{end}}
    <tr><td colspan="3"><strong>Total</strong></td><td><strong>{{.Total}}</strong></td></tr>
  </table>
  <p>Delivery address: {{.Customer.Address}}</p>
  <p>We will contact you at {{.Customer.PhoneNumber}} when the order ships.</p>
</body>
</html>`))

// OrderConfirmation renders the email/send payload for a freshly created
// order.
func OrderConfirmation(o orderdom.Order) (EmailSendPayload, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, o); err != nil {
		return EmailSendPayload{}, fmt.Errorf("render confirmation email: %w", err)
	}
	return EmailSendPayload{
		RecipientEmail: o.Customer.Email,
		Subject:        fmt.Sprintf("Order #%d confirmed - %s", o.Number, o.StoreName),
		HTML:           buf.String(),
	}, nil
}
