package leasefields

// Kind is the wire type a lease field is cleaned to.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Section names used by the prompt builder and the reference export.
const (
	GroupTenant     = "Tenant Information"
	GroupProperty   = "Property Information"
	GroupLeaseTerms = "Lease Terms"
	GroupFinancial  = "Financial Terms"
	GroupAdditional = "Additional Terms"
)

// NotFoundSource is the sentinel citation for fields the model could not locate.
const NotFoundSource = "Not found in document"

// FieldSpec describes one extractable lease field. The table below is the
// single source of truth: the prompt builder, the JSON schema, the cleaning
// pass and the export column set are all derived from it.
type FieldSpec struct {
	Name    string // wire name, snake_case
	Label   string // human label for the reference export
	Group   string
	Kind    Kind
	Default any     // value when missing or null
	Min     float64 // domain minimum for numeric fields
	Prompt  string  // extraction guidance shown to the model
}

// SourceKey returns the wire name of the field's citation counterpart.
func (f FieldSpec) SourceKey() string { return f.Name + "_source" }

// Specs lists every substantive lease field in prompt and export order.
// confidence_score and source_filename are metadata handled separately.
var Specs = []FieldSpec{
	{Name: "tenant_name", Label: "Tenant Name", Group: GroupTenant, Kind: KindString, Default: "",
		Prompt: "Full legal name of the tenant(s)"},
	{Name: "tenant_email", Label: "Tenant Email", Group: GroupTenant, Kind: KindString, Default: "",
		Prompt: "Email address"},
	{Name: "tenant_phone", Label: "Tenant Phone", Group: GroupTenant, Kind: KindString, Default: "",
		Prompt: "Phone number"},

	{Name: "property_address", Label: "Property Address", Group: GroupProperty, Kind: KindString, Default: "",
		Prompt: "Complete property address"},
	{Name: "unit_number", Label: "Unit Number", Group: GroupProperty, Kind: KindString, Default: "",
		Prompt: "Unit or apartment number"},
	{Name: "property_type", Label: "Property Type", Group: GroupProperty, Kind: KindString, Default: "",
		Prompt: "Type of property (apartment, house, condo, etc.)"},
	{Name: "square_footage", Label: "Square Footage", Group: GroupProperty, Kind: KindNumber, Default: float64(0),
		Prompt: "Size in square feet (as number)"},

	{Name: "lease_number", Label: "Lease Number", Group: GroupLeaseTerms, Kind: KindString, Default: "",
		Prompt: "Lease agreement number or ID"},
	{Name: "lease_start_date", Label: "Lease Start Date", Group: GroupLeaseTerms, Kind: KindString, Default: "",
		Prompt: `Start date (format: YYYY-MM-DD) - LOOK CAREFULLY for "Lease Start Date", "Commencement Date", "Start Date", "begins on", etc.`},
	{Name: "lease_end_date", Label: "Lease End Date", Group: GroupLeaseTerms, Kind: KindString, Default: "",
		Prompt: `End date (format: YYYY-MM-DD) - LOOK CAREFULLY for "Lease End Date", "Termination Date", "End Date", "expires on", etc.`},
	{Name: "lease_term_months", Label: "Lease Term (Months)", Group: GroupLeaseTerms, Kind: KindNumber, Default: float64(0),
		Prompt: "Length of lease in months (as number)"},
	{Name: "lease_type", Label: "Lease Type", Group: GroupLeaseTerms, Kind: KindString, Default: "",
		Prompt: "Type of lease (Fixed Term, Month-to-Month, etc.)"},

	{Name: "monthly_rent", Label: "Monthly Rent", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Monthly rent amount (as number, no currency symbols)"},
	{Name: "security_deposit", Label: "Security Deposit", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Security deposit amount (as number)"},
	{Name: "pet_deposit", Label: "Pet Deposit", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Pet deposit amount if applicable (as number)"},
	{Name: "payment_due_date", Label: "Payment Due Date", Group: GroupFinancial, Kind: KindNumber, Default: float64(1), Min: 1,
		Prompt: "Day of month payment is due (as number 1-31)"},
	{Name: "late_fee_type", Label: "Late Fee Type", Group: GroupFinancial, Kind: KindString, Default: "",
		Prompt: `Type of late fee ("percentage" or "flat_amount")`},
	{Name: "late_fee_percentage", Label: "Late Fee Percentage", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Late fee as percentage (e.g., 10 for 10%) if applicable"},
	{Name: "late_fee_flat_amount", Label: "Late Fee Amount", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Late fee as flat dollar amount if applicable"},
	{Name: "late_fee_grace_period", Label: "Late Fee Grace Period", Group: GroupFinancial, Kind: KindNumber, Default: float64(0),
		Prompt: "Grace period for late fees in days (as number)"},

	{Name: "parking_spaces", Label: "Parking Spaces", Group: GroupAdditional, Kind: KindNumber, Default: float64(0),
		Prompt: "Number of parking spaces (as number)"},
	{Name: "pet_allowed", Label: "Pet Allowed", Group: GroupAdditional, Kind: KindBool, Default: false,
		Prompt: "Whether pets are allowed (true/false)"},
	{Name: "pet_type", Label: "Pet Type", Group: GroupAdditional, Kind: KindString, Default: "",
		Prompt: "Type/breed of pet if mentioned"},
	{Name: "utilities_included", Label: "Utilities Included", Group: GroupAdditional, Kind: KindString, Default: "",
		Prompt: "List of utilities included (water, electric, gas, etc.)"},
	{Name: "renewal_options", Label: "Renewal Options", Group: GroupAdditional, Kind: KindString, Default: "",
		Prompt: "Any renewal or extension options mentioned"},
	{Name: "early_termination_clause", Label: "Early Termination", Group: GroupAdditional, Kind: KindString, Default: "",
		Prompt: "Early termination terms if any"},
	{Name: "maintenance_responsibilities", Label: "Maintenance Responsibilities", Group: GroupAdditional, Kind: KindString, Default: "",
		Prompt: "Who is responsible for what maintenance"},
}

// Groups returns the section names in display order.
func Groups() []string {
	return []string{GroupTenant, GroupProperty, GroupLeaseTerms, GroupFinancial, GroupAdditional}
}

// ByGroup returns the specs belonging to one section, in table order.
func ByGroup(group string) []FieldSpec {
	var out []FieldSpec
	for _, fs := range Specs {
		if fs.Group == group {
			out = append(out, fs)
		}
	}
	return out
}

// Lookup returns the spec for a wire name.
func Lookup(name string) (FieldSpec, bool) {
	for _, fs := range Specs {
		if fs.Name == name {
			return fs, true
		}
	}
	return FieldSpec{}, false
}
