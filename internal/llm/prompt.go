package llm

import (
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

// MaxDocumentChars caps how much lease text is sent to the model. Leases
// front-load the operative terms, so the head of the document is enough.
const MaxDocumentChars = 20000

// BuildSystemPrompt composes the system message for lease abstraction.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a professional lease abstraction specialist with expertise in property management systems.",
		"For EVERY field you extract, you MUST include the source text from the document in the corresponding _source field.",
		"Extract data accurately with source citations and return only valid JSON.",
		"Pay special attention to dates and financial terms.",
		"If you found a value, you MUST include where you found it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt composes the extraction instructions, the field list with
// per-field guidance, worked citation examples, and the document text
// truncated to MaxDocumentChars.
func BuildUserPrompt(documentText string) string {
	var b strings.Builder

	b.WriteString("Extract key information from the following lease agreement text and return it as a structured JSON object. ")
	b.WriteString("For EACH field, also provide the exact text snippet from the document where you found that information.\n\n")

	b.WriteString("CRITICAL INSTRUCTIONS:\n")
	b.WriteString("1. Read the ENTIRE document carefully before extracting\n")
	b.WriteString("2. For dates, look for explicit date formats (MM/DD/YYYY, Month DD, YYYY, etc.)\n")
	b.WriteString("3. Pay special attention to sections labeled \"Lease Term\", \"Financial Terms\", \"Rent\", \"Dates\", etc.\n")
	b.WriteString("4. Extract the EXACT values as they appear in the document\n")
	b.WriteString("5. For each field, include a _source field with the exact text snippet where you found it\n")
	b.WriteString("6. If you cannot find a field, use null for the value and \"" + leasefields.NotFoundSource + "\" for the source\n\n")

	b.WriteString("Extract the following fields with their source text:\n")
	for _, group := range leasefields.Groups() {
		b.WriteString("\n**" + group + ":**\n")
		for _, fs := range leasefields.ByGroup(group) {
			b.WriteString("- " + fs.Name + ": " + fs.Prompt + "\n")
			b.WriteString("- " + fs.SourceKey() + ": Exact text snippet where the value was found\n")
		}
	}
	b.WriteString("\n**Metadata:**\n")
	b.WriteString("- confidence_score: Your confidence in the extraction accuracy (0.0 to 1.0)\n\n")

	b.WriteString("IMPORTANT RULES:\n")
	b.WriteString("1. Return ONLY valid JSON, no additional text or explanation\n")
	b.WriteString("2. ALWAYS include BOTH the value field AND its corresponding _source field\n")
	b.WriteString("3. For source fields, copy the EXACT text from the document (20-50 words of context)\n")
	b.WriteString("4. ONLY use \"" + leasefields.NotFoundSource + "\" if the value is truly null or empty\n")
	b.WriteString("5. Format all dates as YYYY-MM-DD (convert from any format you find)\n")
	b.WriteString("6. Format all currency values as numbers without symbols (e.g., 1500.00 not $1,500)\n")
	b.WriteString("7. Be EXTREMELY precise with dates - look for explicit date statements\n")
	b.WriteString("8. Look in the beginning sections for lease dates, and financial sections for rent and deposits\n\n")

	b.WriteString(citationExamples)

	b.WriteString("\nLease Document Text:\n")
	if len(documentText) > MaxDocumentChars {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := MaxDocumentChars
		for cut > 0 && !utf8.RuneStart(documentText[cut]) {
			cut--
		}
		b.WriteString(documentText[:cut])
	} else {
		b.WriteString(documentText)
	}
	b.WriteString("\n\nReturn the extracted data as JSON:")

	return b.String()
}

const citationExamples = `EXAMPLES of correct source citations:

Example 1 - Lease Start Date:
"lease_start_date": "2026-03-01",
"lease_start_date_source": "This Lease Agreement shall commence on March 1, 2026 and continue for a period of twelve months."

Example 2 - Monthly Rent:
"monthly_rent": 1500.00,
"monthly_rent_source": "Tenant agrees to pay monthly rent in the amount of $1,500.00 due on the first day of each month."

Example 3 - Late Fee (Percentage):
"late_fee_type": "percentage",
"late_fee_type_source": "Tenant shall pay Landlord a late charge equal to ten percent (10%) of such payment.",
"late_fee_percentage": 10,
"late_fee_percentage_source": "Tenant shall pay Landlord a late charge equal to ten percent (10%) of such payment.",
"late_fee_flat_amount": null,
"late_fee_flat_amount_source": "Not found in document"

Example 4 - Late Fee (Flat Amount):
"late_fee_type": "flat_amount",
"late_fee_type_source": "A late fee of $75.00 will be charged for any payment received after the grace period.",
"late_fee_percentage": null,
"late_fee_percentage_source": "Not found in document",
"late_fee_flat_amount": 75.00,
"late_fee_flat_amount_source": "A late fee of $75.00 will be charged for any payment received after the grace period."

REMEMBER: If you extracted a value, you MUST have found it somewhere - include that source text!
`
