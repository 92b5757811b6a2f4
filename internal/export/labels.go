package export

// Labels maps internal field keys to display labels. The mapping is injected
// so the German headers can be swapped without touching formatter logic.
type Labels map[string]string

func (l Labels) Get(key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

// DefaultGermanLabels are the reference labels of the Verwaltung views.
var DefaultGermanLabels = Labels{
	"children.guardian_last_name":  "Name (Eltern)",
	"children.guardian_first_name": "Vorname (Eltern)",
	"children.child_first_name":    "Vorname Kind",
	"children.child_last_name":     "Nachname Kind",
	"children.address_extra":       "Adresszusatz",
	"children.birth_date":          "Geburtsdatum",
	"children.street":              "Adresse",
	"children.zip":                 "PLZ",
	"children.city":                "Ort",
	"children.phone":               "Telefon Privat",
	"children.phone_secondary":     "Natel",
	"children.phone_work":          "Telefon Geschäftlich",
	"children.email":               "E-Mail",
	"children.group":               "Gruppe",
	"children.contract_status":     "Vertragsstatus",
	"children.contract_end":        "Vertragsende",

	"guardians.first_name":      "Vorname",
	"guardians.last_name":       "Nachname",
	"guardians.email":           "E-Mail",
	"guardians.phone":           "Telefon",
	"guardians.phone_secondary": "Telefon 2",
	"guardians.street":          "Strasse",
	"guardians.zip":             "PLZ",
	"guardians.city":            "Ort",

	"contracts.number":      "Vertragsnummer",
	"contracts.child":       "Kind",
	"contracts.guardian":    "Elternteil",
	"contracts.status":      "Status",
	"contracts.start_date":  "Startdatum",
	"contracts.end_date":    "Enddatum",
	"contracts.monthly_fee": "Monatsbeitrag",

	"tab.children":  "Kinder",
	"tab.guardians": "Eltern",
	"tab.contracts": "Verträge",

	"legend.exiting": "Austritt innerhalb 30 Tagen",
	"print.created":  "Erstellt am",
	"print.open_end": "unbefristet",
}
