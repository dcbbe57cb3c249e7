package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATStatus describes whether and how often a client files VAT returns.
type VATStatus string

const (
	VATNone      VATStatus = "NU"
	VATMonthly   VATStatus = "DA_LUNAR"
	VATQuarterly VATStatus = "DA_TRIM"
)

// PayrollStatus mirrors VATStatus for payroll declarations.
type PayrollStatus string

const (
	PayrollNone      PayrollStatus = "NU"
	PayrollMonthly   PayrollStatus = "DA_LUNAR"
	PayrollQuarterly PayrollStatus = "DA_TRIM"
)

// Client is a business the office keeps books for. Its fiscal attributes are
// the inputs of rule matching.
type Client struct {
	ClientID        int64            `json:"clientID"`
	Denumire        string           `json:"denumire"`
	Tip             string           `json:"tip"`
	CUI             string           `json:"cui"`
	Activa          bool             `json:"activa"`
	DataVerificarii *time.Time       `json:"dataVerificarii,omitempty"`
	Adresa          *string          `json:"adresa,omitempty"`
	Administratie   string           `json:"administratie"`
	Impozit         string           `json:"impozit"`
	PlatitorTVA     VATStatus        `json:"platitorTVA"`
	TVALaIncasare   bool             `json:"tvaLaIncasare"`
	AreCodTVAUE     bool             `json:"areCodTVAUE"`
	CodTVAUE        *string          `json:"codTVAUE,omitempty"`
	OperatiuneUE    bool             `json:"operatiuneUE"`
	Dividende       bool             `json:"dividende"`
	Salariati       PayrollStatus    `json:"salariati"`
	CasaDeMarcat    bool             `json:"casaDeMarcat"`
	TarifConta      *decimal.Decimal `json:"tarifConta,omitempty"`
	TarifBilant     *decimal.Decimal `json:"tarifBilant,omitempty"`
	AuditFields
}
