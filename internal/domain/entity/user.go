package entity

import "time"

// User representa al dueño de los datos. La autenticación vive fuera de este núcleo:
// aquí solo se necesita la identidad para el scoping por usuario.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
