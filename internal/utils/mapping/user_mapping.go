package mapping

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	"github.com/SscSPs/cabinet_contabil_app/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         domain.Role(m.Role),
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToDomainClientUserSlice converts joined assignment rows to domain ClientUsers
func ToDomainClientUserSlice(ms []models.ClientUser) []domain.ClientUser {
	ds := make([]domain.ClientUser, len(ms))
	for i, m := range ms {
		ds[i] = domain.ClientUser{ClientID: m.ClientID, User: ToDomainUser(m.User)}
	}
	return ds
}
