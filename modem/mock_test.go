package modem_test

import (
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/cellular/modem"
)

type MockSequenceBuilder struct {
	transport *modem.MockTransport
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

// step expects cmd to be written and resp to be read back.
func (b *MockSequenceBuilder) step(cmd, resp string) *MockSequenceBuilder {
	wire := []byte(cmd + "\r")
	b.calls = append(b.calls,
		b.transport.EXPECT().Write(wire).Return(len(wire), nil),
		b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, resp), nil
		}),
	)
	return b
}

func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.step("AT", "AT\r\nOK\r\n")
}

// ATAfterBoot answers the first AT with the boot URC in front of the echo.
func (b *MockSequenceBuilder) ATAfterBoot() *MockSequenceBuilder {
	return b.step("AT", "RDY\r\n\r\nAT\r\nOK\r\n")
}

func (b *MockSequenceBuilder) ATError() *MockSequenceBuilder {
	return b.step("AT", "ERROR\r\n")
}

func (b *MockSequenceBuilder) EchoOff() *MockSequenceBuilder {
	return b.step("ATE0", "ATE0\r\nOK\r\n")
}

func (b *MockSequenceBuilder) VerboseErrors() *MockSequenceBuilder {
	return b.step("AT+CMEE=2", "OK\r\n")
}

func (b *MockSequenceBuilder) URCPort() *MockSequenceBuilder {
	return b.step(`AT+QURCCFG="urcport","uart1"`, "OK\r\n")
}

// Registration enables the CREG, CGREG and CEREG reports.
func (b *MockSequenceBuilder) Registration() *MockSequenceBuilder {
	return b.step("AT+CREG=2", "OK\r\n").
		step("AT+CGREG=2", "OK\r\n").
		step("AT+CEREG=2", "OK\r\n")
}

// RegistrationRejected fails the first registration report command.
func (b *MockSequenceBuilder) RegistrationRejected() *MockSequenceBuilder {
	return b.step("AT+CREG=2", "ERROR\r\n")
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

func initMockCalls(transport *modem.MockTransport) []any {
	return NewMockSequence(transport).
		AT().
		EchoOff().
		VerboseErrors().
		URCPort().
		Registration().
		Build()
}
