package mapping

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
	"github.com/shopspring/decimal"
)

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:        d.ClientID,
		Denumire:        d.Denumire,
		Tip:             d.Tip,
		CUI:             d.CUI,
		Activa:          d.Activa,
		DataVerificarii: d.DataVerificarii,
		Adresa:          d.Adresa,
		Administratie:   d.Administratie,
		Impozit:         d.Impozit,
		PlatitorTVA:     string(d.PlatitorTVA),
		TVALaIncasare:   d.TVALaIncasare,
		AreCodTVAUE:     d.AreCodTVAUE,
		CodTVAUE:        d.CodTVAUE,
		OperatiuneUE:    d.OperatiuneUE,
		Dividende:       d.Dividende,
		Salariati:       string(d.Salariati),
		CasaDeMarcat:    d.CasaDeMarcat,
		TarifConta:      toNullDecimal(d.TarifConta),
		TarifBilant:     toNullDecimal(d.TarifBilant),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:        m.ClientID,
		Denumire:        m.Denumire,
		Tip:             m.Tip,
		CUI:             m.CUI,
		Activa:          m.Activa,
		DataVerificarii: m.DataVerificarii,
		Adresa:          m.Adresa,
		Administratie:   m.Administratie,
		Impozit:         m.Impozit,
		PlatitorTVA:     domain.VATStatus(m.PlatitorTVA),
		TVALaIncasare:   m.TVALaIncasare,
		AreCodTVAUE:     m.AreCodTVAUE,
		CodTVAUE:        m.CodTVAUE,
		OperatiuneUE:    m.OperatiuneUE,
		Dividende:       m.Dividende,
		Salariati:       domain.PayrollStatus(m.Salariati),
		CasaDeMarcat:    m.CasaDeMarcat,
		TarifConta:      fromNullDecimal(m.TarifConta),
		TarifBilant:     fromNullDecimal(m.TarifBilant),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
