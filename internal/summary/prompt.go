package summary

import (
	"fmt"
	"strings"

	"github.com/kyluxehaven/storefront/internal/order"
)

const systemPrompt = `You are an order summarization expert for KyluxeHaven, an e-commerce website.
Your task is to generate a clear, concise, and accurate summary of a customer's order.
The currency is Nigerian Naira (₦).
The summary should include the following:
- A greeting to the customer by name.
- A list of all items ordered, including their name, quantity, and price in Naira.
- The total amount of the order.
- A thank you message and an estimated delivery date of 3-5 business days.
Generate the order summary as a single block of text.`

// BuildPrompt renders the structured order payload the generator consumes.
func BuildPrompt(o order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Shipping Address: %s\n", o.ShippingAddress)
	fmt.Fprintf(&b, "Total Amount: ₦%.2f\n", o.TotalAmount)
	b.WriteString("Order Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- Product: %s, Quantity: %d, Price: ₦%.2f\n", it.Name, it.Quantity, it.UnitPrice)
	}

	return b.String()
}
