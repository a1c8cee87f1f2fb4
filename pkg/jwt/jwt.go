package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token. Un token de reseteo de password nunca vale como sesión
// y viceversa.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

// Identity proyección mínima de la cuenta embebida en el token de sesión.
// FeatureFlags es un snapshot al momento de emisión: si un SUPER_ADMIN revoca
// flags a mitad de sesión, el admin conserva los viejos hasta volver a
// loguearse (limitación aceptada, ver DESIGN.md).
type Identity struct {
	UserID       string
	Email        string
	Name         string
	Role         string
	FeatureFlags map[string]bool
}

// Claims incluye los claims estándar JWT más los campos propios del portal.
// Role y FeatureFlags viajan en el token para que los middlewares RBAC puedan
// decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string          `json:"user_id"`
	Email        string          `json:"email"`
	Name         string          `json:"name,omitempty"`
	Role         string          `json:"role"`
	FeatureFlags map[string]bool `json:"feature_flags,omitempty"`
	Purpose      string          `json:"purpose"`
}

// Generate genera un token de sesión firmado con la identidad completa.
func Generate(secret string, ident Identity, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{
		RegisteredClaims: registered(ident.UserID, issuer, expMinutes),
		UserID:           ident.UserID,
		Email:            ident.Email,
		Name:             ident.Name,
		Role:             ident.Role,
		FeatureFlags:     ident.FeatureFlags,
		Purpose:          PurposeSession,
	})
}

// GenerateResetToken genera un token de corta vida para completar un reseteo
// de password. No incluye rol ni flags: no sirve como sesión.
func GenerateResetToken(secret, userID, email, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{
		RegisteredClaims: registered(userID, issuer, expMinutes),
		UserID:           userID,
		Email:            email,
		Purpose:          PurposePasswordReset,
	})
}

// Parse valida un token de sesión y devuelve la identidad embebida.
// Falla cerrado: token malformado, expirado, con firma incorrecta o con
// propósito distinto de sesión → error (tratado como no autenticado).
func Parse(secret, tokenString string) (*Identity, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeSession {
		return nil, fmt.Errorf("jwt: el token no es de sesión")
	}
	return &Identity{
		UserID:       claims.UserID,
		Email:        claims.Email,
		Name:         claims.Name,
		Role:         claims.Role,
		FeatureFlags: claims.FeatureFlags,
	}, nil
}

// ParseResetToken valida un token de reseteo y devuelve userID y email.
func ParseResetToken(secret, tokenString string) (userID, email string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.Purpose != PurposePasswordReset {
		return "", "", fmt.Errorf("jwt: el token no es de reseteo")
	}
	return claims.UserID, claims.Email, nil
}

func registered(subject, issuer string, expMinutes int) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
}

func sign(secret string, claims Claims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
