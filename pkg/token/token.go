// Package token implementa el token de autologin por URL: un payload
// username|role|ts firmado con HMAC-SHA256 y codificado en base64. Sirve para
// restaurar la sesión tras recargar la página; no toca la base de datos.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sep = "|"

// Sign genera el token de autologin para username/role con fecha de emisión ts.
// Formato: base64url( username|role|unix_ts|firma ), con la firma en base64 estándar.
// Falla si username o role contienen el separador.
func Sign(secret, username, role string, ts time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	if strings.Contains(username, sep) || strings.Contains(role, sep) {
		return "", fmt.Errorf("token: username/role no pueden contener %q", sep)
	}
	payload := username + sep + role + sep + strconv.FormatInt(ts.Unix(), 10)
	raw := payload + sep + signature(secret, payload)
	return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

// Verify valida firma y antigüedad del token. Devuelve username y role, u
// ok=false ante cualquier defecto: base64 inválido, formato incorrecto, firma
// forjada o emisión fuera de la ventana maxAge. Verificación pura, sin DB.
func Verify(secret, tok string, maxAge time.Duration, now time.Time) (username, role string, ok bool) {
	if secret == "" || tok == "" {
		return "", "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(string(raw), sep)
	if len(parts) != 4 {
		return "", "", false
	}
	username, role = parts[0], parts[1]
	payload := parts[0] + sep + parts[1] + sep + parts[2]
	want := signature(secret, payload)
	if subtle.ConstantTimeCompare([]byte(want), []byte(parts[3])) != 1 {
		return "", "", false
	}
	issued, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", false
	}
	age := now.Sub(time.Unix(issued, 0))
	if age < 0 || age > maxAge {
		return "", "", false
	}
	return username, role, true
}

func signature(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
