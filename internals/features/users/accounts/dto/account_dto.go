package dto

import (
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/users/accounts/model"
)

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// AccountResponse: password tidak pernah ikut.
type AccountResponse struct {
	AccountID                uuid.UUID  `json:"account_id"`
	AccountName              string     `json:"account_name"`
	AccountNRP               string     `json:"account_nrp"`
	AccountRank              *string    `json:"account_rank"`
	AccountPosition          *string    `json:"account_position"`
	AccountPositionType      string     `json:"account_position_type"`
	AccountSubdirectoratID   *uuid.UUID `json:"account_subdirectorat_id"`
	AccountSubdirectoratName *string    `json:"account_subdirectorat_name"`
	AccountSupervisorID      *uuid.UUID `json:"account_supervisor_id"`
	AccountSupervisorName    *string    `json:"account_supervisor_name"`
	AccountIsActive          bool       `json:"account_is_active"`
	AccountCreatedAt         time.Time  `json:"account_created_at"`
	AccountUpdatedAt         time.Time  `json:"account_updated_at"`
}

func FromAccountModel(mo m.AccountModel) AccountResponse {
	return AccountResponse{
		AccountID:              mo.AccountID,
		AccountName:            mo.AccountName,
		AccountNRP:             mo.AccountNRP,
		AccountRank:            mo.AccountRank,
		AccountPosition:        mo.AccountPosition,
		AccountPositionType:    mo.AccountPositionType,
		AccountSubdirectoratID: mo.AccountSubdirectoratID,
		AccountSupervisorID:    mo.AccountSupervisorID,
		AccountIsActive:        mo.AccountIsActive,
		AccountCreatedAt:       mo.AccountCreatedAt,
		AccountUpdatedAt:       mo.AccountUpdatedAt,
	}
}
