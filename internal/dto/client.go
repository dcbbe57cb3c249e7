package dto

import (
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/utils"
	"github.com/shopspring/decimal"
)

// ClientRequest is the body for creating or replacing a client.
type ClientRequest struct {
	Denumire        string           `json:"denumire" binding:"required,max=255"`
	Tip             string           `json:"tip" binding:"required,max=20"`
	CUI             string           `json:"cui" binding:"required,max=20"`
	Activa          *bool            `json:"activa"`
	DataVerificarii *string          `json:"dataVerificarii" binding:"omitempty,datetime=2006-01-02"`
	Adresa          *string          `json:"adresa"`
	Administratie   string           `json:"administratie"`
	Impozit         string           `json:"impozit"`
	PlatitorTVA     string           `json:"platitorTVA" binding:"omitempty,oneof=NU DA_LUNAR DA_TRIM"`
	TVALaIncasare   bool             `json:"tvaLaIncasare"`
	AreCodTVAUE     bool             `json:"areCodTVAUE"`
	CodTVAUE        *string          `json:"codTVAUE"`
	OperatiuneUE    bool             `json:"operatiuneUE"`
	Dividende       bool             `json:"dividende"`
	Salariati       string           `json:"salariati" binding:"omitempty,oneof=NU DA_LUNAR DA_TRIM"`
	CasaDeMarcat    bool             `json:"casaDeMarcat"`
	TarifConta      *decimal.Decimal `json:"tarifConta"`
	TarifBilant     *decimal.Decimal `json:"tarifBilant"`
}

// ToDomain builds the client the request describes. The date was already
// validated by binding.
func (r ClientRequest) ToDomain() domain.Client {
	c := domain.Client{
		Denumire:      r.Denumire,
		Tip:           r.Tip,
		CUI:           r.CUI,
		Activa:        true,
		Adresa:        r.Adresa,
		Administratie: r.Administratie,
		Impozit:       r.Impozit,
		PlatitorTVA:   domain.VATStatus(r.PlatitorTVA),
		TVALaIncasare: r.TVALaIncasare,
		AreCodTVAUE:   r.AreCodTVAUE,
		CodTVAUE:      r.CodTVAUE,
		OperatiuneUE:  r.OperatiuneUE,
		Dividende:     r.Dividende,
		Salariati:     domain.PayrollStatus(r.Salariati),
		CasaDeMarcat:  r.CasaDeMarcat,
		TarifConta:    r.TarifConta,
		TarifBilant:   r.TarifBilant,
	}
	if r.Activa != nil {
		c.Activa = *r.Activa
	}
	if c.PlatitorTVA == "" {
		c.PlatitorTVA = domain.VATNone
	}
	if c.Salariati == "" {
		c.Salariati = domain.PayrollNone
	}
	if r.DataVerificarii != nil {
		if d, err := time.Parse(time.DateOnly, *r.DataVerificarii); err == nil {
			c.DataVerificarii = &d
		}
	}
	return c
}

// ClientResponse is a client as returned by the API. Fees are fixed-point
// strings with two decimals.
type ClientResponse struct {
	ClientID        int64     `json:"clientID"`
	Denumire        string    `json:"denumire"`
	Tip             string    `json:"tip"`
	CUI             string    `json:"cui"`
	Activa          bool      `json:"activa"`
	DataVerificarii *string   `json:"dataVerificarii,omitempty"`
	Adresa          *string   `json:"adresa,omitempty"`
	Administratie   string    `json:"administratie"`
	Impozit         string    `json:"impozit"`
	PlatitorTVA     string    `json:"platitorTVA"`
	TVALaIncasare   bool      `json:"tvaLaIncasare"`
	AreCodTVAUE     bool      `json:"areCodTVAUE"`
	CodTVAUE        *string   `json:"codTVAUE,omitempty"`
	OperatiuneUE    bool      `json:"operatiuneUE"`
	Dividende       bool      `json:"dividende"`
	Salariati       string    `json:"salariati"`
	CasaDeMarcat    bool      `json:"casaDeMarcat"`
	TarifConta      *string   `json:"tarifConta,omitempty"`
	TarifBilant     *string   `json:"tarifBilant,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	resp := ClientResponse{
		ClientID:      c.ClientID,
		Denumire:      c.Denumire,
		Tip:           c.Tip,
		CUI:           c.CUI,
		Activa:        c.Activa,
		Adresa:        c.Adresa,
		Administratie: c.Administratie,
		Impozit:       c.Impozit,
		PlatitorTVA:   string(c.PlatitorTVA),
		TVALaIncasare: c.TVALaIncasare,
		AreCodTVAUE:   c.AreCodTVAUE,
		CodTVAUE:      c.CodTVAUE,
		OperatiuneUE:  c.OperatiuneUE,
		Dividende:     c.Dividende,
		Salariati:     string(c.Salariati),
		CasaDeMarcat:  c.CasaDeMarcat,
		TarifConta:    utils.FormatFee(c.TarifConta),
		TarifBilant:   utils.FormatFee(c.TarifBilant),
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
	if c.DataVerificarii != nil {
		d := c.DataVerificarii.UTC().Format(time.DateOnly)
		resp.DataVerificarii = &d
	}
	return resp
}

func ToClientResponses(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

// AssignUserRequest links a user to a client.
type AssignUserRequest struct {
	UserID int64 `json:"userID" binding:"required,gt=0"`
}

// ClientUserResponse is one user linked to a client.
type ClientUserResponse struct {
	ClientID int64 `json:"clientID"`
	UserResponse
}

func ToClientUserResponses(users []domain.ClientUser) []ClientUserResponse {
	out := make([]ClientUserResponse, len(users))
	for i := range users {
		out[i] = ClientUserResponse{ClientID: users[i].ClientID, UserResponse: ToUserResponse(&users[i].User)}
	}
	return out
}
