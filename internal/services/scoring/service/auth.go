package service

import (
	"crypto/sha512"
	"encoding/hex"

	"scorebox/internal/services/scoring/domain"
)

// CheckAuth verifies the envelope token against the expected digest.
//
// Admin tokens hash the current wall-clock hour (YYYYMMDDHH) with the admin
// salt, so a token is only valid within the hour it was minted in. That
// narrow window is deliberate. Regular tokens hash account+login+salt; an
// absent account contributes the empty string
func (s *Service) CheckAuth(env *domain.Envelope) bool {
	var digest string
	if env.IsAdmin() {
		digest = sha512Hex(s.now().Format("2006010215") + domain.AdminSalt)
	} else {
		digest = sha512Hex(env.Account + env.Login + domain.Salt)
	}
	return digest == env.Token
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
