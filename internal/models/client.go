package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a row of the clients table.
type Client struct {
	ClientID        int64               `db:"id"`
	Denumire        string              `db:"denumire"`
	Tip             string              `db:"tip"`
	CUI             string              `db:"cui"`
	Activa          bool                `db:"activa"`
	DataVerificarii *time.Time          `db:"data_verificarii"`
	Adresa          *string             `db:"adresa"`
	Administratie   string              `db:"administratie"`
	Impozit         string              `db:"impozit"`
	PlatitorTVA     string              `db:"platitor_tva"`
	TVALaIncasare   bool                `db:"tva_la_incasare"`
	AreCodTVAUE     bool                `db:"are_cod_tva_ue"`
	CodTVAUE        *string             `db:"cod_tva_ue"`
	OperatiuneUE    bool                `db:"operatiune_ue"`
	Dividende       bool                `db:"dividende"`
	Salariati       string              `db:"salariati"`
	CasaDeMarcat    bool                `db:"casa_de_marcat"`
	TarifConta      decimal.NullDecimal `db:"tarif_conta"`
	TarifBilant     decimal.NullDecimal `db:"tarif_bilant"`
	AuditFields
}
