package models

import "time"

// User is a staff member of the department. PasswordHash is never
// serialized; Permissions is a native set of capability strings.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Username     string    `json:"usuario"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Rank         string    `json:"patente"`
	Permissions  []string  `json:"permissoes"`
	Active       bool      `json:"ativo"`
	CreatedAt    time.Time `json:"created_at"`
}

// Can reports whether the user holds the given capability.
func (u *User) Can(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
	RoleRecruit Role = "recruit"
)

// Capability strings checked by the permission middleware.
// Format: "resource:action".
const (
	PermUsersManage          = "usuarios:gerenciar"
	PermArrestsCreate        = "prisoes:registrar"
	PermWantedManage         = "procurados:gerenciar"
	PermReportsCreate        = "bo:registrar"
	PermInvestigationsManage = "investigacoes:gerenciar"
	PermFinesCreate          = "multas:registrar"
	PermSeizuresCreate       = "apreensoes:registrar"
	PermAssetsManage         = "patrimonio:gerenciar"
	PermNewsManage           = "noticias:gerenciar"
	PermLicensesReview       = "porte:avaliar"
	PermQuizReview           = "quiz:avaliar"
	PermAuditRead            = "auditoria:ler"
)

// AllPermissions returns every capability, used when seeding the
// bootstrap admin account.
func AllPermissions() []string {
	return []string{
		PermUsersManage,
		PermArrestsCreate,
		PermWantedManage,
		PermReportsCreate,
		PermInvestigationsManage,
		PermFinesCreate,
		PermSeizuresCreate,
		PermAssetsManage,
		PermNewsManage,
		PermLicensesReview,
		PermQuizReview,
		PermAuditRead,
	}
}
