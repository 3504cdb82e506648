package fluri

// Record is a declarative description of a URL of any scheme. Only the fields
// that the scheme uses are taken into account.
type Record struct {
	Scheme   string `json:"scheme" yaml:"scheme" toml:"scheme" msgpack:"scheme" mapstructure:"scheme"`
	Template string `json:"template,omitempty" yaml:"template,omitempty" toml:"template,omitempty" msgpack:"template,omitempty" mapstructure:"template"`

	Host     string       `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty" msgpack:"host,omitempty" mapstructure:"host"`
	Port     *int         `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty" msgpack:"port,omitempty" mapstructure:"port"`
	WWW      bool         `json:"www,omitempty" yaml:"www,omitempty" toml:"www,omitempty" msgpack:"www,omitempty" mapstructure:"www"`
	Path     []string     `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" msgpack:"path,omitempty" mapstructure:"path"`
	Query    []QueryField `json:"query,omitempty" yaml:"query,omitempty" toml:"query,omitempty" msgpack:"query,omitempty" mapstructure:"query"`
	Fragment string       `json:"fragment,omitempty" yaml:"fragment,omitempty" toml:"fragment,omitempty" msgpack:"fragment,omitempty" mapstructure:"fragment"`

	Username string `json:"username,omitempty" yaml:"username,omitempty" toml:"username,omitempty" msgpack:"username,omitempty" mapstructure:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" toml:"password,omitempty" msgpack:"password,omitempty" mapstructure:"password"`

	MediaType string `json:"media_type,omitempty" yaml:"media_type,omitempty" toml:"media_type,omitempty" msgpack:"media_type,omitempty" mapstructure:"media_type"`
	Base64    bool   `json:"base64,omitempty" yaml:"base64,omitempty" toml:"base64,omitempty" msgpack:"base64,omitempty" mapstructure:"base64"`
	Data      string `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty" msgpack:"data,omitempty" mapstructure:"data"`

	Email   string `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty" msgpack:"email,omitempty" mapstructure:"email"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty" toml:"subject,omitempty" msgpack:"subject,omitempty" mapstructure:"subject"`
	Content string `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty" msgpack:"content,omitempty" mapstructure:"content"`
}

// URL returns a new URL variant described by the r.
//
// For the http(s) schemes the template is parsed first, then the other fields
// are applied on top of it: the path segments and the query fields are
// appended, the others replace the parsed ones.
func (r Record) URL() (URL, error) {
	u, err := New(r.Scheme)
	if err != nil {
		return nil, err
	}

	switch u := u.(type) {
	case *HTTPURL:
		if r.Template != "" {
			if _, err := u.Parse(r.Template); err != nil {
				return nil, err
			}
		}

		if r.Host != "" {
			u.SetHost(r.Host)
		}

		if r.Port != nil {
			u.SetPort(*r.Port)
		}

		if r.WWW {
			u.ShowWWW(true)
		}

		for _, p := range r.Path {
			u.AddRouteParam(p)
		}

		for _, f := range r.Query {
			u.AddQueryField(f.Name, f.Value)
		}

		if r.Fragment != "" {
			u.SetFragment(r.Fragment)
		}
	case *FileURL:
		u.SetUsername(r.Username).
			SetPassword(r.Password).
			SetHost(r.Host)
		if r.Port != nil {
			u.SetPort(*r.Port)
		}

		for _, p := range r.Path {
			u.AddPathSegment(p)
		}
	case *TelnetURL:
		u.SetUsername(r.Username).
			SetPassword(r.Password).
			SetHost(r.Host)
		if r.Port != nil {
			u.SetPort(*r.Port)
		}
	case *DataURL:
		u.SetMediaType(r.MediaType).
			SetBase64(r.Base64).
			SetData(r.Data)
	case *MailtoURL:
		u.SetEmailAddress(r.Email).
			SetSubject(r.Subject).
			SetContent(r.Content)
	}

	return u, nil
}

// RecordOf returns the `Record` that describes the current fields of the u.
func RecordOf(u URL) Record {
	r := Record{
		Scheme: SchemeName(u),
	}

	switch u := u.(type) {
	case *HTTPURL:
		r.Host = u.Host()
		r.Port = portPtr(u.Port())
		r.WWW = u.IsWWWShown()
		r.Path = u.RouteParams()
		r.Query = u.QueryFields()
		r.Fragment = u.Fragment()
	case *FileURL:
		r.Username = u.Username()
		r.Password = u.Password()
		r.Host = u.Host()
		r.Port = portPtr(u.Port())
		r.Path = u.PathSegments()
	case *TelnetURL:
		r.Username = u.Username()
		r.Password = u.Password()
		r.Host = u.Host()
		r.Port = portPtr(u.Port())
	case *DataURL:
		r.MediaType = u.MediaType()
		r.Base64 = u.IsBase64()
		r.Data = u.Data()
	case *MailtoURL:
		r.Email = u.EmailAddress()
		r.Subject = u.Subject()
		r.Content = u.Content()
	}

	return r
}

// portPtr returns a pointer to the port if it is set.
func portPtr(port int, set bool) *int {
	if !set {
		return nil
	}

	return &port
}
