package auth

// Claims es la identidad que el verifier extrae del token.
// Name es opcional; los handlers que arman mensajes lo prefieren al lookup de perfil.
type Claims struct {
	UserID string
	Email  string
	Name   string
}
