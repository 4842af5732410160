package services_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"teamkasse/internal/services"
)

func TestVerifyPasswordPlaintext(t *testing.T) {
	auth := &services.AuthService{Password: "geheim"}

	ok, err := auth.VerifyPassword("geheim")
	if err != nil || !ok {
		t.Fatalf("want match, got ok=%v err=%v", ok, err)
	}

	// wrong password is a false result, not an error
	ok, err = auth.VerifyPassword("falsch")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyPasswordBcryptWinsOverPlaintext(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	auth := &services.AuthService{Password: "anderes", PasswordHash: string(hash)}

	ok, err := auth.VerifyPassword("geheim")
	if err != nil || !ok {
		t.Fatalf("hash should win: ok=%v err=%v", ok, err)
	}
	ok, _ = auth.VerifyPassword("anderes")
	if ok {
		t.Fatal("plaintext secret must be ignored when a hash is set")
	}
}

func TestVerifyPasswordUnconfigured(t *testing.T) {
	auth := &services.AuthService{}

	_, err := auth.VerifyPassword("egal")
	if !errors.Is(err, services.ErrPasswordNotConfigured) {
		t.Fatalf("want ErrPasswordNotConfigured, got %v", err)
	}
}
