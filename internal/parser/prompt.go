package parser

// BuildBillExtractionPrompt returns the fixed extraction prompt sent with
// every page image. The same prompt is used for all pages and providers so
// repeated runs over identical input stay comparable.
func BuildBillExtractionPrompt() string {
	return `You are a medical bill data extraction assistant. Analyze the provided bill page image and extract every line item into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- Extract EVERY individual charge line on the page with its name, amount, rate, and quantity. Do not skip, summarize, or merge items.
- Do NOT include subtotal, total, grand total, balance, advance, or discount summary rows as line items. Only individual charges count.
- Classify the page as exactly one of: "Bill Detail" (itemized charges), "Final Bill" (summary page restating totals of other pages), "Pharmacy" (medicine line items).
- If a rate or quantity is not printed for an item, use 0.
- All amounts are plain numbers with no currency symbols or thousands separators.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object.

The JSON object must follow this schema exactly:
{
  "page_no": "1",
  "page_type": "",
  "bill_items": [
    {
      "item_name": "",
      "item_amount": 0,
      "item_rate": 0,
      "item_quantity": 0
    }
  ]
}

If the page has no line items (for example a cover page), return an empty "bill_items" array and still classify the page.`
}
