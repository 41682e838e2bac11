// Package linktoken issues and validates the signed tokens embedded in
// distributed interview links. A token binds a link id to a calendar-day
// access window so a link cannot be opened before its scheduled date or
// reused after it.
package linktoken

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	apperrors "github.com/hirelane/interview-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Issuer creates and validates HMAC-signed link access tokens.
type Issuer struct {
	secret []byte
}

// NewIssuer creates a link token issuer with the given HMAC secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token granting access to linkID for the calendar day of
// interviewDate (in interviewDate's location).
func (i *Issuer) Issue(linkID string, interviewDate time.Time) (string, error) {
	if linkID == "" {
		return "", errors.New("[Issue] linkID is required")
	}

	dayStart := time.Date(interviewDate.Year(), interviewDate.Month(), interviewDate.Day(),
		0, 0, 0, 0, interviewDate.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	claims := jwtlib.MapClaims{
		"sub": linkID,
		"nbf": dayStart.Unix(),
		"exp": dayEnd.Unix(),
		"iat": NowTimeFunc().Unix(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Issue] sign")
	}
	return signed, nil
}

// Validate checks the token signature and access window and returns the link
// id it grants access to.
func (i *Issuer) Validate(tokenString string) (string, error) {
	token, err := jwtlib.Parse(tokenString, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtlib.WithTimeFunc(NowTimeFunc))

	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenNotValidYet):
			return "", apperrors.ErrLinkNotYetActive
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return "", apperrors.ErrLinkWindowClosed
		default:
			return "", errors.Wrap(apperrors.ErrLinkTokenInvalid, err.Error())
		}
	}
	if !token.Valid {
		return "", apperrors.ErrLinkTokenInvalid
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", apperrors.ErrLinkTokenInvalid
	}
	linkID, _ := claims["sub"].(string)
	if linkID == "" {
		return "", apperrors.ErrLinkTokenInvalid
	}
	return linkID, nil
}
