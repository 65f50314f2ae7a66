package leasefields

// Record is the cleaned, typed shape of one abstracted lease. Every
// substantive field carries a _source citation quoting where in the
// document the value was found.
type Record struct {
	TenantName        string `json:"tenant_name"`
	TenantNameSource  string `json:"tenant_name_source"`
	TenantEmail       string `json:"tenant_email"`
	TenantEmailSource string `json:"tenant_email_source"`
	TenantPhone       string `json:"tenant_phone"`
	TenantPhoneSource string `json:"tenant_phone_source"`

	PropertyAddress       string  `json:"property_address"`
	PropertyAddressSource string  `json:"property_address_source"`
	UnitNumber            string  `json:"unit_number"`
	UnitNumberSource      string  `json:"unit_number_source"`
	PropertyType          string  `json:"property_type"`
	PropertyTypeSource    string  `json:"property_type_source"`
	SquareFootage         float64 `json:"square_footage"`
	SquareFootageSource   string  `json:"square_footage_source"`

	LeaseNumber           string  `json:"lease_number"`
	LeaseNumberSource     string  `json:"lease_number_source"`
	LeaseStartDate        string  `json:"lease_start_date"`
	LeaseStartDateSource  string  `json:"lease_start_date_source"`
	LeaseEndDate          string  `json:"lease_end_date"`
	LeaseEndDateSource    string  `json:"lease_end_date_source"`
	LeaseTermMonths       float64 `json:"lease_term_months"`
	LeaseTermMonthsSource string  `json:"lease_term_months_source"`
	LeaseType             string  `json:"lease_type"`
	LeaseTypeSource       string  `json:"lease_type_source"`

	MonthlyRent              float64 `json:"monthly_rent"`
	MonthlyRentSource        string  `json:"monthly_rent_source"`
	SecurityDeposit          float64 `json:"security_deposit"`
	SecurityDepositSource    string  `json:"security_deposit_source"`
	PetDeposit               float64 `json:"pet_deposit"`
	PetDepositSource         string  `json:"pet_deposit_source"`
	PaymentDueDate           float64 `json:"payment_due_date"`
	PaymentDueDateSource     string  `json:"payment_due_date_source"`
	LateFeeType              string  `json:"late_fee_type"`
	LateFeeTypeSource        string  `json:"late_fee_type_source"`
	LateFeePercentage        float64 `json:"late_fee_percentage"`
	LateFeePercentageSource  string  `json:"late_fee_percentage_source"`
	LateFeeFlatAmount        float64 `json:"late_fee_flat_amount"`
	LateFeeFlatAmountSource  string  `json:"late_fee_flat_amount_source"`
	LateFeeGracePeriod       float64 `json:"late_fee_grace_period"`
	LateFeeGracePeriodSource string  `json:"late_fee_grace_period_source"`

	ParkingSpaces                     float64 `json:"parking_spaces"`
	ParkingSpacesSource               string  `json:"parking_spaces_source"`
	PetAllowed                        bool    `json:"pet_allowed"`
	PetAllowedSource                  string  `json:"pet_allowed_source"`
	PetType                           string  `json:"pet_type"`
	PetTypeSource                     string  `json:"pet_type_source"`
	UtilitiesIncluded                 string  `json:"utilities_included"`
	UtilitiesIncludedSource           string  `json:"utilities_included_source"`
	RenewalOptions                    string  `json:"renewal_options"`
	RenewalOptionsSource              string  `json:"renewal_options_source"`
	EarlyTerminationClause            string  `json:"early_termination_clause"`
	EarlyTerminationClauseSource      string  `json:"early_termination_clause_source"`
	MaintenanceResponsibilities       string  `json:"maintenance_responsibilities"`
	MaintenanceResponsibilitiesSource string  `json:"maintenance_responsibilities_source"`

	ConfidenceScore float64 `json:"confidence_score"`
	SourceFilename  string  `json:"source_filename"`
}
