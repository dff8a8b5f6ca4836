package modem_test

import (
	"context"
	"testing"

	"i4.energy/across/espgw/modem"
)

// MockSequenceBuilder records the transport calls of whole command
// exchanges: the written line, one TryReadByte per reply byte and the
// empty read that ends the burst.
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

func (b *MockSequenceBuilder) Exchange(cmd, reply string) *MockSequenceBuilder {
	wire := []byte(cmd + "\r\n")
	b.calls = append(b.calls, b.transport.EXPECT().Write(wire).Return(len(wire), nil))
	for i := 0; i < len(reply); i++ {
		b.calls = append(b.calls, b.transport.EXPECT().TryReadByte().Return(reply[i], true, nil))
	}
	b.calls = append(b.calls, b.transport.EXPECT().TryReadByte().Return(byte(0), false, nil))
	return b
}

func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.Exchange("AT", "AT\r\nOK\r\n")
}

func (b *MockSequenceBuilder) ATError() *MockSequenceBuilder {
	return b.Exchange("AT", "AT\r\nError")
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

// newTestModem returns a Modem on a scripted transport, without the init
// probe. The modem is closed when the test ends.
func newTestModem(t *testing.T, opts ...func(*modem.ConfigBuilder)) (*modem.Modem, *modem.TestTransport, *modem.TestDeadline) {
	t.Helper()

	transport := modem.NewTestTransport()
	deadline := modem.NewTestDeadline()

	builder := modem.NewConfigBuilder().
		WithDialer(modem.DialerFunc(func(context.Context) (modem.Transport, error) {
			return transport, nil
		})).
		WithDeadline(deadline).
		WithInitProbe(false)
	for _, opt := range opts {
		opt(builder)
	}

	config, err := builder.Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	m, err := modem.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	t.Cleanup(func() { m.Close() })

	return m, transport, deadline
}
