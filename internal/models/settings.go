package models

type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

type LoginMode string

const (
	LoginModeVoucher  LoginMode = "voucher"
	LoginModeUserPass LoginMode = "userpass"
)

// LoginConfig styles the admin login page.
type LoginConfig struct {
	WelcomeMessage  string         `json:"welcomeMessage" yaml:"welcomeMessage"`
	BgType          BackgroundType `json:"bgType" yaml:"bgType"`
	BgColor         string         `json:"bgColor" yaml:"bgColor"`
	BgGradient      string         `json:"bgGradient" yaml:"bgGradient"`
	BgImage         string         `json:"bgImage" yaml:"bgImage"`
	OverlayPattern  VoucherPattern `json:"overlayPattern" yaml:"overlayPattern"`
	CardOpacity     int            `json:"cardOpacity" yaml:"cardOpacity"`
	CardBlur        int            `json:"cardBlur" yaml:"cardBlur"`
	CardRadius      int            `json:"cardRadius" yaml:"cardRadius"`
	PrimaryColor    string         `json:"primaryColor" yaml:"primaryColor"`
	HeaderTextColor string         `json:"headerTextColor" yaml:"headerTextColor"`
	BodyTextColor   string         `json:"bodyTextColor" yaml:"bodyTextColor"`
	ShowBranding    bool           `json:"showBranding" yaml:"showBranding"`
}

// HotspotDesignConfig styles the captive-portal login page.
type HotspotDesignConfig struct {
	LoginConfig   `yaml:",inline"`
	FooterText    string    `json:"footerText" yaml:"footerText"`
	ShowPriceList bool      `json:"showPriceList" yaml:"showPriceList"`
	LoginMode     LoginMode `json:"loginMode" yaml:"loginMode"`
}

type CompanySettings struct {
	Name           string              `json:"name" yaml:"name"`
	MenuLogo       string              `json:"menuLogo" yaml:"menuLogo"`
	LoginLogo      string              `json:"loginLogo" yaml:"loginLogo"`
	VoucherLogo    string              `json:"voucherLogo" yaml:"voucherLogo"`
	ProfilePic     string              `json:"profilePic" yaml:"profilePic"`
	HotspotLogo    string              `json:"hotspotLogo" yaml:"hotspotLogo"`
	Address        string              `json:"address" yaml:"address"`
	Phone          string              `json:"phone" yaml:"phone"`
	Language       string              `json:"language" yaml:"language"`
	Currency       string              `json:"currency" yaml:"currency"`
	CurrencySymbol string              `json:"currencySymbol" yaml:"currencySymbol"`
	LoginConfig    LoginConfig         `json:"loginConfig" yaml:"loginConfig"`
	HotspotConfig  HotspotDesignConfig `json:"hotspotConfig" yaml:"hotspotConfig"`
}
