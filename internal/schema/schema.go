// Package schema is the single source of truth for the applications table
// shared by sync (writer) and the dashboard (reader). Both sides import the
// column names from here so the two commands cannot drift apart silently.
package schema

import (
	"fmt"
	"strings"
)

// Table is the one table in the local store.
const Table = "applications"

// MaxColumnLen caps generated column names; longer Airtable question texts
// are truncated to stay portable across SQL engines.
const MaxColumnLen = 60

// Bookkeeping columns added to every row by sync.
const (
	ColAirtableID = "airtable_id"
	ColCreatedAt  = "created_at"
	ColCohort     = "cohort"
)

// Canonical data columns the dashboard queries by name.
const (
	ColStartupName       = "startup_name"
	ColContactEmail      = "contact_email"
	ColCountry           = "country"
	ColApplicationStatus = "application_status"
	ColRevenueGenerating = "revenue_generating"
	ColTotalRaisedUSD    = "total_raised_usd"
)

// BaseColumns is the canonical column order for the applications table.
// Every sync run creates all of these even when a cohort's form never asked
// the question; unmapped Airtable fields append after them.
var BaseColumns = []string{
	ColAirtableID,
	ColCreatedAt,
	ColCohort,
	ColStartupName,
	ColContactEmail,
	"applicant_email",
	"applicant_name",
	"phone_number",
	"location",
	"startup_hq",
	"gender",
	ColCountry,
	"theme_primary",
	"product_description",
	"product_demo",
	"startup_website_url",
	"founding_date",
	"cap_table_link",
	"pitchdeck_link",
	"num_founders",
	"num_female_founders",
	"cofounders_details",
	"monthly_revenue_usd",
	"monthly_expenses_usd",
	"runway_months",
	ColTotalRaisedUSD,
	"latest_fundraise_usd",
	ColRevenueGenerating,
	ColApplicationStatus,
	"prior_accelerators",
}

// RenameMap maps Airtable question texts to their database columns. The
// application forms changed wording between cohorts, so several questions
// map to the same column; the first non-empty value wins.
var RenameMap = map[string]string{
	// Contact & bio
	"Email Address":                       "contact_email",
	"What's your email?":                  "applicant_email",
	"What's your email address?":          "applicant_email",
	"What's your full name?":              "applicant_name",
	"What's your phone number?":           "phone_number",
	"What's your location?":               "location",
	"Where are you based?":                "location",
	"Where's your startup headquartered?": "startup_hq",
	"What's your gender?":                 "gender",
	"What's your gender":                  "gender",
	"Country":                             ColCountry,

	// Startup info
	"Which theme is your startup most aligned with?":                    "theme_primary",
	"What's the name of your startup?":                                  ColStartupName,
	"What is your company making or going to make?":                     "product_description",
	"What is your company making / going to make? ":                     "product_description",
	"Describe what your startup does in 50 words or less.":              "product_description",
	"What's the URL of your demo video (1-2 minutes), if you have one?": "product_demo",
	"What's your startup's website URL?":                                "startup_website_url",
	"What's your startup's founding date?":                              "founding_date",

	// Docs
	"Please attach your current cap table as it exists today": "cap_table_link",
	"Please upload a copy of your startup's pitch deck":       "pitchdeck_link",
	"Please upload a copy of your startup's pitch deck?":      "pitchdeck_link",

	// Team
	"How many founders does your startup have?":                 "num_founders",
	"How many female founders does your company have, if any?":  "num_female_founders",
	"For each co-founder, please list out their title, email, location, nationality, and LinkedIn URL": "cofounders_details",
	"For each co-founder, please list out their title, email, location, and nationality.":              "cofounders_details",

	// Financials
	"What is your revenue in USD for each of the past 6 months?": "monthly_revenue_usd",
	"How much money do you spend per month?":                     "monthly_expenses_usd",
	"How much money does your startup spend per month?":          "monthly_expenses_usd",
	"How long is your runway (months)?":                          "runway_months",
	"How long is your runway?":                                   "runway_months",
	"Runway (Months)":                                            "runway_months",
	"How much money have you raised from investors, including friends and family, in total in US Dollars?": ColTotalRaisedUSD,
	"Fundraise Amount ($)": "latest_fundraise_usd",
	"Revenue Generating?":  ColRevenueGenerating,

	// Status
	"Status":             ColApplicationStatus,
	"Application Status": ColApplicationStatus,

	// Long question texts that would otherwise auto-truncate badly
	"If you have already participated or committed to participate in an incubator, accelerator, or pre-accelerator program, please tell us about it.":      "prior_accelerators",
	"If you have already participated or committed to participate in an incubator, accelerator, or pre-accelerator program, please tell us about it/them.": "prior_accelerators",
}

// ColumnFor resolves an Airtable field name to its database column: the
// rename map if the question is known, otherwise a sanitized version of the
// field name itself.
func ColumnFor(field string) string {
	if col, ok := RenameMap[field]; ok {
		return col
	}
	return CleanColumn(field)
}

// CleanColumn sanitizes an arbitrary field name into a safe column name:
// lowercased, non-alphanumerics collapsed to underscores, truncated to
// MaxColumnLen.
func CleanColumn(field string) string {
	clean := strings.TrimSpace(strings.ToLower(field))

	var b strings.Builder
	b.Grow(len(clean))
	lastUnderscore := false
	for _, r := range clean {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		out = "field"
	}
	if len(out) > MaxColumnLen {
		out = strings.Trim(out[:MaxColumnLen], "_")
	}
	return out
}

// DDL returns the CREATE TABLE statement for the applications table with the
// base columns plus any extra dynamic columns discovered during sync.
func DDL(extraColumns []string) string {
	var defs []string
	defs = append(defs, fmt.Sprintf("%q TEXT PRIMARY KEY", ColAirtableID))
	for _, col := range BaseColumns[1:] {
		defs = append(defs, fmt.Sprintf("%q TEXT", col))
	}
	for _, col := range extraColumns {
		defs = append(defs, fmt.Sprintf("%q TEXT", col))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", Table, strings.Join(defs, ",\n\t"))
}

// IsBaseColumn reports whether col is part of the canonical column set.
func IsBaseColumn(col string) bool {
	for _, base := range BaseColumns {
		if base == col {
			return true
		}
	}
	return false
}
