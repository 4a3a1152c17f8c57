package engine

import (
	"fmt"
	"sync"
)

// Setting names shared across backends. Each backend maps the subset it
// understands onto its native knobs and keeps the rest logical.
const (
	SettingJavaScriptEnabled = "content.javascript.enabled"
	SettingAutoLoadImages    = "content.images"
	SettingLocalStorage      = "content.local_storage"
	SettingWebGL             = "content.webgl"

	SettingSizeDefault      = "fonts.web.size.default"
	SettingSizeDefaultFixed = "fonts.web.size.default_fixed"
	SettingSizeMinimum      = "fonts.web.size.minimum"

	SettingFamilyStandard  = "fonts.web.family.standard"
	SettingFamilyFixed     = "fonts.web.family.fixed"
	SettingFamilySerif     = "fonts.web.family.serif"
	SettingFamilySansSerif = "fonts.web.family.sans_serif"
)

// MemSettings is a Settings implementation backed by plain maps. It is
// the whole story for backends without native settings and the
// bookkeeping layer for those that apply values natively on top via the
// apply callback.
type MemSettings struct {
	mu sync.Mutex

	attrDefaults map[string]bool
	attrs        map[string]bool

	sizeDefaults map[string]int
	sizes        map[string]int

	familyDefaults map[string]string
	families       map[string]string

	userAgent        string
	defaultUserAgent string

	// apply, when set, is called after every accepted change with the
	// setting name; font families pass their current value through
	// FontFamily and so on.
	apply func(name string)
}

// NewMemSettings builds settings seeded from cfg. The defaults are what
// Reset restores.
func NewMemSettings(cfg Config) *MemSettings {
	def := DefaultConfig()
	sizeDefault := cfg.DefaultFontSize
	if sizeDefault == 0 {
		sizeDefault = def.DefaultFontSize
	}
	sizeMinimum := cfg.MinimumFontSize
	if sizeMinimum == 0 {
		sizeMinimum = def.MinimumFontSize
	}

	s := &MemSettings{
		attrDefaults: map[string]bool{
			SettingJavaScriptEnabled: cfg.EnableJavaScript,
			SettingAutoLoadImages:    cfg.AutoLoadImages,
			SettingLocalStorage:      true,
			SettingWebGL:             true,
		},
		sizeDefaults: map[string]int{
			SettingSizeDefault:      sizeDefault,
			SettingSizeDefaultFixed: 13,
			SettingSizeMinimum:      sizeMinimum,
		},
		familyDefaults: map[string]string{
			SettingFamilyStandard:  "",
			SettingFamilyFixed:     "",
			SettingFamilySerif:     "",
			SettingFamilySansSerif: "",
		},
		attrs:            make(map[string]bool),
		sizes:            make(map[string]int),
		families:         make(map[string]string),
		userAgent:        cfg.UserAgent,
		defaultUserAgent: cfg.UserAgent,
	}
	for k, v := range s.attrDefaults {
		s.attrs[k] = v
	}
	for k, v := range s.sizeDefaults {
		s.sizes[k] = v
	}
	for k, v := range s.familyDefaults {
		s.families[k] = v
	}
	return s
}

// OnApply registers a callback invoked with the setting name after each
// accepted change.
func (s *MemSettings) OnApply(fn func(name string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply = fn
}

func (s *MemSettings) notify(name string) {
	if s.apply != nil {
		s.apply(name)
	}
}

func (s *MemSettings) Attribute(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attrs[name]
	if !ok {
		return false, fmt.Errorf("attribute %q: %w", name, ErrUnknownSetting)
	}
	return v, nil
}

func (s *MemSettings) SetAttribute(name string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attrDefaults[name]; !ok {
		return fmt.Errorf("attribute %q: %w", name, ErrUnknownSetting)
	}
	s.attrs[name] = on
	s.notify(name)
	return nil
}

func (s *MemSettings) ResetAttribute(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.attrDefaults[name]
	if !ok {
		return fmt.Errorf("attribute %q: %w", name, ErrUnknownSetting)
	}
	s.attrs[name] = def
	s.notify(name)
	return nil
}

func (s *MemSettings) FontSize(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sizes[name]
	if !ok {
		return 0, fmt.Errorf("font size %q: %w", name, ErrUnknownSetting)
	}
	return v, nil
}

func (s *MemSettings) SetFontSize(name string, px int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sizeDefaults[name]; !ok {
		return fmt.Errorf("font size %q: %w", name, ErrUnknownSetting)
	}
	if px <= 0 {
		return fmt.Errorf("font size %q: %d is not positive", name, px)
	}
	s.sizes[name] = px
	s.notify(name)
	return nil
}

func (s *MemSettings) ResetFontSize(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.sizeDefaults[name]
	if !ok {
		return fmt.Errorf("font size %q: %w", name, ErrUnknownSetting)
	}
	s.sizes[name] = def
	s.notify(name)
	return nil
}

func (s *MemSettings) FontFamily(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.families[name]
	if !ok {
		return "", fmt.Errorf("font family %q: %w", name, ErrUnknownSetting)
	}
	return v, nil
}

func (s *MemSettings) SetFontFamily(name, family string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.familyDefaults[name]; !ok {
		return fmt.Errorf("font family %q: %w", name, ErrUnknownSetting)
	}
	s.families[name] = family
	s.notify(name)
	return nil
}

func (s *MemSettings) ResetFontFamily(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.familyDefaults[name]
	if !ok {
		return fmt.Errorf("font family %q: %w", name, ErrUnknownSetting)
	}
	s.families[name] = def
	s.notify(name)
	return nil
}

func (s *MemSettings) UserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userAgent
}

func (s *MemSettings) SetUserAgent(ua string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userAgent = ua
	s.notify("user_agent")
	return nil
}
