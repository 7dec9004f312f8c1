package model

import "github.com/google/uuid"

type Principal struct {
	UserID uuid.UUID
	Role   string
}
