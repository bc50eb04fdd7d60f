package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "declaration_error":
			return "フィールド宣言が不正です"
		case "required":
			return "必須フィールドが不足しています"
		case "invalid_type":
			return "型が不正です"
		case "invalid_choice":
			return "許可された値ではありません"
		case "validate_failed":
			return "検証関数が値を拒否しました"
		case "unknown_key":
			return "未知のフィールドです"
		case "immutable":
			return "変更できないフィールドです"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "declaration_error":
			return "invalid field declaration"
		case "required":
			return "required field missing"
		case "invalid_type":
			return "invalid type"
		case "invalid_choice":
			return "value is not an allowed choice"
		case "validate_failed":
			return "validate function rejected value"
		case "unknown_key":
			return "unknown field"
		case "immutable":
			return "field is immutable"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
