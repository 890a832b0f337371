package domain

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUnauthorized       = errors.New("unauthorized")
)

// OwnerSubject is the token subject of the single account allowed to use the
// API.
const OwnerSubject = "owner"

const ownerHashCost = 12

// OwnerCredential guards the API with one password.
type OwnerCredential struct {
	PasswordHash []byte
}

func NewOwnerCredential(plainPassword string) (*OwnerCredential, error) {
	c := &OwnerCredential{}
	if err := c.SetPassword(plainPassword); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *OwnerCredential) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), ownerHashCost)
	if err != nil {
		return err
	}

	c.PasswordHash = hash
	return nil
}

func (c *OwnerCredential) CheckPassword(plainPassword string) error {
	if len(c.PasswordHash) == 0 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
