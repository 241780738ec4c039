package cellular

import (
	"fmt"
	"slices"
	"strings"

	"i4.energy/across/cellular/at"
)

// RegDomain is the network domain a registration report refers to.
type RegDomain int

const (
	// DomainCS is circuit switched, reported by +CREG.
	DomainCS RegDomain = iota
	// DomainPS is GPRS packet switched, reported by +CGREG.
	DomainPS
	// DomainEPS is LTE, reported by +CEREG.
	DomainEPS
	domainCount
)

var domainNames = [...]string{"cs", "ps", "eps"}

func (d RegDomain) String() string {
	if d < 0 || d >= domainCount {
		return "unknown"
	}
	return domainNames[d]
}

func (d RegDomain) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *RegDomain) UnmarshalText(text []byte) error {
	i := slices.Index(domainNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("registration domain %q: %w", text, ErrInvalidData)
	}
	*d = RegDomain(i)
	return nil
}

// RegStatus is the <stat> field of a registration report.
type RegStatus int

const (
	RegNotRegistered RegStatus = iota
	RegHome
	RegSearching
	RegDenied
	RegUnknown
	RegRoaming
	RegSMSOnlyHome
	RegSMSOnlyRoaming
	RegEmergencyOnly
	RegCSFBNotPreferredHome
	RegCSFBNotPreferredRoaming
	regStatusMax
)

var regStatusNames = [...]string{
	"not_registered", "home", "searching", "denied", "unknown", "roaming",
	"sms_only_home", "sms_only_roaming", "emergency_only",
	"csfb_not_preferred_home", "csfb_not_preferred_roaming",
}

func (s RegStatus) String() string {
	if s < 0 || s >= regStatusMax {
		return "invalid"
	}
	return regStatusNames[s]
}

func (s RegStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RegStatus) UnmarshalText(text []byte) error {
	i := slices.Index(regStatusNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("registration status %q: %w", text, ErrInvalidData)
	}
	*s = RegStatus(i)
	return nil
}

// Registered reports whether the status is one of the home or roaming
// registrations.
func (s RegStatus) Registered() bool {
	switch s {
	case RegHome, RegRoaming, RegSMSOnlyHome, RegSMSOnlyRoaming,
		RegCSFBNotPreferredHome, RegCSFBNotPreferredRoaming:
		return true
	}
	return false
}

// NoAcT marks a report without an access technology field.
const NoAcT int8 = -1

// Registration is the last report received for one domain. LAC holds the
// tracking area code for DomainEPS.
type Registration struct {
	Domain RegDomain `json:"domain"`
	Status RegStatus `json:"status"`
	LAC    uint32    `json:"lac,omitempty"`
	CellID uint32    `json:"cell_id,omitempty"`
	AcT    int8      `json:"act"`
}

// registration returns the parser for one of +CREG, +CGREG and +CEREG. Both
// the unsolicited "<stat>[,<lac>,<ci>[,<act>]]" form and the solicited
// "<n>,<stat>[,...]" form are accepted. Trailing fields past <act> are
// ignored.
func registration(domain RegDomain) func(c *Context, body string) error {
	return func(c *Context, body string) error {
		line, err := at.RemoveAllWhiteSpaces(body)
		if err != nil {
			return err
		}
		fields := strings.Split(line, at.Delimiter)
		if len(fields) >= 2 && fields[1] != "" && !strings.HasPrefix(fields[1], `"`) {
			fields = fields[1:]
		}

		stat, err := at.StrToI(fields[0], 10)
		if err != nil {
			return fmt.Errorf("%s registration status: %w", domain, err)
		}
		if stat < 0 || stat >= int32(regStatusMax) {
			return fmt.Errorf("%s registration status %d: %w", domain, stat, ErrIndexOutOfRange)
		}

		reg := Registration{Domain: domain, Status: RegStatus(stat), AcT: NoAcT}
		if len(fields) == 2 {
			return fmt.Errorf("%s registration %q: %w", domain, body, at.ErrBadParameter)
		}
		if len(fields) >= 3 {
			if reg.LAC, err = hexField(fields[1]); err != nil {
				return fmt.Errorf("%s registration area: %w", domain, err)
			}
			if reg.CellID, err = hexField(fields[2]); err != nil {
				return fmt.Errorf("%s registration cell: %w", domain, err)
			}
		}
		if len(fields) >= 4 && fields[3] != "" {
			act, err := at.StrToI(fields[3], 10)
			if err != nil {
				return fmt.Errorf("%s registration act: %w", domain, err)
			}
			if act < 0 || act > 127 {
				return fmt.Errorf("%s registration act %d: %w", domain, act, at.ErrInvalidNumber)
			}
			reg.AcT = int8(act)
		}

		c.setRegistration(reg)
		c.log().Info("Network registration", "domain", domain, "status", reg.Status,
			"lac", reg.LAC, "cell_id", reg.CellID, "act", reg.AcT)
		if c.regHandler == nil {
			c.log().Debug("Registration callback not set", "domain", domain)
			return nil
		}
		c.regHandler.RegistrationChanged(reg)
		return nil
	}
}

// hexField reads an optional quoted hexadecimal field. An empty field is 0.
func hexField(field string) (uint32, error) {
	field = strings.Trim(field, `"`)
	if field == "" {
		return 0, nil
	}
	v, err := at.StrToI(field, 16)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("hex field %q: %w", field, at.ErrInvalidNumber)
	}
	return uint32(v), nil
}
