package i18n

import (
	"errors"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// Key identifies a translatable message.
type Key int

const (
	Authenticating Key = iota
	FillAllFields
	InvalidEmailOrPassword
	NetworkConnectionError
	DataProcessingError
	UnknownErrorOccurred
	SignInSucceeded
	SignedOut
	InvalidEmailFormat
	PasswordRequirements
)

var catalog = map[Key]map[Language]string{
	Authenticating: {
		English: "Authenticating...",
		Arabic:  "جارٍ التحقق...",
		French:  "Authentification...",
		Chinese: "正在验证...",
	},
	FillAllFields: {
		English: "Please fill in all fields correctly",
		Arabic:  "يرجى تعبئة جميع الحقول بشكل صحيح",
		French:  "Veuillez remplir tous les champs correctement",
		Chinese: "请正确填写所有字段",
	},
	InvalidEmailOrPassword: {
		English: "Invalid email or password",
		Arabic:  "بريد إلكتروني أو كلمة مرور غير صالحة",
		French:  "Email ou mot de passe invalide",
		Chinese: "邮箱或密码无效",
	},
	NetworkConnectionError: {
		English: "Network connection error",
		Arabic:  "خطأ في اتصال الشبكة",
		French:  "Erreur de connexion réseau",
		Chinese: "网络连接错误",
	},
	DataProcessingError: {
		English: "Data processing error",
		Arabic:  "خطأ في معالجة البيانات",
		French:  "Erreur de traitement des données",
		Chinese: "数据处理错误",
	},
	UnknownErrorOccurred: {
		English: "An unknown error occurred",
		Arabic:  "حدث خطأ غير معروف",
		French:  "Une erreur inconnue est survenue",
		Chinese: "发生未知错误",
	},
	SignInSucceeded: {
		English: "Welcome Back",
		Arabic:  "مرحبًا بعودتك",
		French:  "Bienvenue de retour",
		Chinese: "欢迎回来",
	},
	SignedOut: {
		English: "Signed out",
		Arabic:  "تم تسجيل الخروج",
		French:  "Déconnecté",
		Chinese: "已退出登录",
	},
	InvalidEmailFormat: {
		English: "Please enter a valid email address",
		Arabic:  "يرجى إدخال بريد إلكتروني صالح",
		French:  "Veuillez saisir une adresse e-mail valide",
		Chinese: "请输入有效的邮箱地址",
	},
	PasswordRequirements: {
		English: "Password must be at least 8 characters with an uppercase letter and a special character",
		Arabic:  "يجب أن تتكون كلمة المرور من 8 أحرف على الأقل مع حرف كبير ورمز خاص",
		French:  "Le mot de passe doit contenir au moins 8 caractères, une majuscule et un caractère spécial",
		Chinese: "密码至少8个字符，并包含一个大写字母和一个特殊字符",
	},
}

// T returns the message for key in lang, falling back to English.
func T(lang Language, key Key) string {
	msgs, ok := catalog[key]
	if !ok {
		return ""
	}
	if s, ok := msgs[lang]; ok {
		return s
	}
	return msgs[English]
}

// ErrorMessage returns the user-facing text for err. Server errors show the
// message the service sent.
func ErrorMessage(lang Language, err error) string {
	var authErr *entity.AuthError
	if !errors.As(err, &authErr) {
		return T(lang, UnknownErrorOccurred)
	}
	switch authErr.Kind {
	case entity.KindInvalidCredentials:
		return T(lang, InvalidEmailOrPassword)
	case entity.KindNetwork:
		return T(lang, NetworkConnectionError)
	case entity.KindDecoding:
		return T(lang, DataProcessingError)
	case entity.KindServer:
		if authErr.Message != "" {
			return authErr.Message
		}
		return T(lang, UnknownErrorOccurred)
	default:
		return T(lang, UnknownErrorOccurred)
	}
}
