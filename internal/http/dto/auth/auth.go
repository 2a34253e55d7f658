package auth

import "errors"

var ErrMissingFields = errors.New("username y password son obligatorios")

// AuthRequest es el body de POST /auth. Las credenciales se aceptan tal
// cual (no hay verificación contra ningún identity store); solo se exige
// que ambos campos vengan presentes y sean strings.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate chequea presencia de campos. Corre antes de tocar cualquier
// clave del store.
func (r *AuthRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return ErrMissingFields
	}
	return nil
}
