package models

// Setting: пара ключ/значение из раздела «Настройки» (контакты, соцсети, SEO).
type Setting struct {
	ID    ID     `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
	Group string `json:"group"`
}

func (s Setting) RecordID() ID        { return s.ID }
func (s Setting) DisplayName() string { return s.Key }
