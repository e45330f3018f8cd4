package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais os campos da aplicação. Tipo vai no
// token para o middleware decidir sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	Usuario string `json:"usuario"`
	Tipo    string `json:"tipo"` // "Administrador" | "Visitante"
}

// Generate gera um token JWT assinado com usuário e tipo.
func Generate(secret, usuario, tipo, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   usuario,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Usuario: usuario,
		Tipo:    tipo,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve usuário e tipo. Retorna erro para token
// inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (usuario, tipo string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.Usuario, claims.Tipo, nil
}
