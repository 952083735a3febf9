package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptyRecord = errors.New("session: record missing identity")

// recordClaims carries the identity inside the signed encoding. CreatedAt
// stays an RFC 3339 string so both encodings serialize dates identically.
type recordClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	jwt.RegisteredClaims
}

func (s *Store) encode(rec Record) (string, error) {
	if len(s.signingKey) == 0 {
		data, err := json.Marshal(rec)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	claims := recordClaims{
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		Role:        rec.Role,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  rec.ID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Store) decode(raw string) (Record, error) {
	if len(s.signingKey) == 0 {
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return Record{}, err
		}
		if rec.ID == "" {
			return Record{}, errEmptyRecord
		}
		return rec, nil
	}

	var claims recordClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Record{}, err
	}
	if claims.Subject == "" {
		return Record{}, errEmptyRecord
	}

	createdAt, err := time.Parse(time.RFC3339, claims.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("session: createdAt: %w", err)
	}

	return Record{
		ID:          claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        claims.Role,
		CreatedAt:   createdAt,
	}, nil
}
