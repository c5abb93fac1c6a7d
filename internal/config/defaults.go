package config

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Bind: "0.0.0.0:8000",
		Log: Log{
			Level:  "info",
			Format: "auto",
		},
		Postgres: Postgres{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "extended_media_info",
		},
		TMDB: TMDB{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		OpenAI: OpenAI{
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1",
		},
	}
}
