package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOTPCooldown = errors.New("otp requested too recently")
	ErrOTPInvalid  = errors.New("invalid or expired otp")
)

const (
	otpTTL         = 5 * time.Minute
	otpCooldown    = 30 * time.Second
	otpMaxAttempts = 5

	// codes are six digits and short lived, so the hash cost stays low
	otpHashCost = bcrypt.MinCost
)

type otpEntry struct {
	hash     []byte
	issuedAt time.Time
	attempts int
}

// OTPIssuer hands out one-time login codes per phone number. Codes are
// kept only as bcrypt hashes.
type OTPIssuer struct {
	mu       sync.Mutex
	codes    map[string]otpEntry
	now      func() time.Time
	generate func() (string, error)
}

func NewOTPIssuer() *OTPIssuer {
	return &OTPIssuer{
		codes:    make(map[string]otpEntry),
		now:      time.Now,
		generate: randomCode,
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue creates a fresh code for phone. A resend inside the cooldown
// window fails with ErrOTPCooldown and the remaining wait.
func (o *OTPIssuer) Issue(phone string) (string, time.Duration, error) {
	now := o.now()
	o.mu.Lock()
	if e, ok := o.codes[phone]; ok {
		if wait := e.issuedAt.Add(otpCooldown).Sub(now); wait > 0 {
			o.mu.Unlock()
			return "", wait, ErrOTPCooldown
		}
	}
	// hold the cooldown slot while hashing; a nil hash matches no code
	o.codes[phone] = otpEntry{issuedAt: now}
	o.mu.Unlock()

	code, hash, err := o.newCode()

	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.codes[phone]; !ok || !e.issuedAt.Equal(now) || e.hash != nil {
		return "", 0, ErrOTPCooldown
	}
	if err != nil {
		delete(o.codes, phone)
		return "", 0, err
	}
	o.codes[phone] = otpEntry{hash: hash, issuedAt: now}
	return code, 0, nil
}

func (o *OTPIssuer) newCode() (string, []byte, error) {
	code, err := o.generate()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), otpHashCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, hash, nil
}

// Verify consumes the code on success. Too many wrong guesses discard it.
func (o *OTPIssuer) Verify(phone, code string) error {
	o.mu.Lock()
	e, ok := o.codes[phone]
	if !ok || o.now().Sub(e.issuedAt) > otpTTL {
		delete(o.codes, phone)
		o.mu.Unlock()
		return ErrOTPInvalid
	}
	o.mu.Unlock()

	match := bcrypt.CompareHashAndPassword(e.hash, []byte(code)) == nil

	o.mu.Lock()
	defer o.mu.Unlock()
	cur, ok := o.codes[phone]
	if !ok || !cur.issuedAt.Equal(e.issuedAt) {
		// consumed or reissued meanwhile
		return ErrOTPInvalid
	}
	if !match {
		cur.attempts++
		if cur.attempts >= otpMaxAttempts {
			delete(o.codes, phone)
		} else {
			o.codes[phone] = cur
		}
		return ErrOTPInvalid
	}
	delete(o.codes, phone)
	return nil
}
