package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/missoes-dashboard-api/internal/config"
)

// IdentityClaims sao os claims do token emitido pelo servico de autenticacao
// (login Google) e consumidos aqui. Email identifica o usuario dentro das
// missoes; Name e so para exibicao.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateIdentityToken gera um token de identidade assinado com o segredo
// compartilhado com o servico de autenticacao. Usado em testes e tooling.
func GenerateIdentityToken(email, name string, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.ExpirationHours) * time.Hour)

	claims := &IdentityClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateIdentityToken valida um token de identidade e retorna os claims
func ValidateIdentityToken(tokenString string, cfg *config.Config) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("token missing email claim")
	}

	return claims, nil
}
