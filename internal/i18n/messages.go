// Package i18n provides the bilingual (English/French) user-facing
// message catalog. Translation is a pure lookup from (language, key)
// to text; no domain logic lives here and nothing here is stateful.
package i18n

// Lang selects a message catalog.
type Lang string

const (
	LangEN Lang = "en"
	LangFR Lang = "fr"
)

// ParseLang normalizes a caller-supplied language tag, defaulting to
// English for anything that is not French.
func ParseLang(tag string) Lang {
	if tag == string(LangFR) {
		return LangFR
	}
	return LangEN
}

// Message keys used by the HTTP layer.
const (
	MsgInvalidInput    = "invalid_input"
	MsgNotFound        = "not_found"
	MsgDuplicateUser   = "duplicate_user"
	MsgIntegrity       = "integrity"
	MsgOwnerRequired   = "owner_required"
	MsgUnauthorized    = "unauthorized"
	MsgForbidden       = "forbidden"
	MsgServerError     = "server_error"
	MsgLoginFailed     = "login_failed"
	MsgLoggedOut       = "logged_out"
)

var catalogs = map[Lang]map[string]string{
	LangEN: {
		MsgInvalidInput:  "The submitted values are invalid. Please correct them and try again.",
		MsgNotFound:      "The requested item does not exist.",
		MsgDuplicateUser: "This username is already taken.",
		MsgIntegrity:     "The operation references an item that does not exist.",
		MsgOwnerRequired: "A project must belong to a signed-in user.",
		MsgUnauthorized:  "Please sign in to continue.",
		MsgForbidden:     "You are not allowed to perform this action.",
		MsgServerError:   "Something went wrong on our side. Please try again later.",
		MsgLoginFailed:   "Unknown username or wrong password.",
		MsgLoggedOut:     "You have been signed out.",
	},
	LangFR: {
		MsgInvalidInput:  "Les valeurs soumises sont invalides. Veuillez les corriger et réessayer.",
		MsgNotFound:      "L'élément demandé n'existe pas.",
		MsgDuplicateUser: "Ce nom d'utilisateur est déjà pris.",
		MsgIntegrity:     "L'opération fait référence à un élément qui n'existe pas.",
		MsgOwnerRequired: "Un projet doit appartenir à un utilisateur connecté.",
		MsgUnauthorized:  "Veuillez vous connecter pour continuer.",
		MsgForbidden:     "Vous n'êtes pas autorisé à effectuer cette action.",
		MsgServerError:   "Une erreur est survenue de notre côté. Veuillez réessayer plus tard.",
		MsgLoginFailed:   "Nom d'utilisateur inconnu ou mot de passe erroné.",
		MsgLoggedOut:     "Vous avez été déconnecté.",
	},
}

// T returns the message for key in the given language. Unknown keys
// fall back to the server-error text so a missing translation never
// leaks a raw key to the user.
func T(lang Lang, key string) string {
	cat, ok := catalogs[lang]
	if !ok {
		cat = catalogs[LangEN]
	}
	if msg, ok := cat[key]; ok {
		return msg
	}
	return catalogs[LangEN][MsgServerError]
}
