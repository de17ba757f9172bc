package config

const (
	// DefaultThreshold is the similarity a matched question must strictly exceed.
	DefaultThreshold = 0.5
	// DefaultFallbackMessage is returned when no stored question matches.
	DefaultFallbackMessage = "Maaf, saya tidak mengerti pertanyaan Anda. Silakan coba lagi."
	// DefaultSuggestions is the number of related questions offered on fallback.
	DefaultSuggestions = 3
	// DefaultFuzziness is the edit distance allowed per suggestion term.
	DefaultFuzziness = 1
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8501
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "/usr/local/var/gluco/data/diabetes_qa_dataset2.csv"
	}
	if cfg.Corpus.QuestionColumn == "" {
		cfg.Corpus.QuestionColumn = "Pertanyaan"
	}
	if cfg.Corpus.AnswerColumn == "" {
		cfg.Corpus.AnswerColumn = "Jawaban"
	}
	if cfg.Corpus.Table == "" {
		cfg.Corpus.Table = "qa"
	}
	if cfg.Matcher.Threshold == nil {
		t := DefaultThreshold
		cfg.Matcher.Threshold = &t
	}
	if cfg.Matcher.FallbackMessage == "" {
		cfg.Matcher.FallbackMessage = DefaultFallbackMessage
	}
	if cfg.Matcher.Suggestions == nil {
		n := DefaultSuggestions
		cfg.Matcher.Suggestions = &n
	}
	if cfg.Matcher.Fuzziness == nil {
		f := DefaultFuzziness
		cfg.Matcher.Fuzziness = &f
	}
	if cfg.Model.ClassifierPath == "" {
		cfg.Model.ClassifierPath = "/usr/local/var/gluco/data/models/diabetes_model.json"
	}
	if cfg.Model.ScalerPath == "" {
		cfg.Model.ScalerPath = "/usr/local/var/gluco/data/models/scaler.json"
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 400
	}
}
