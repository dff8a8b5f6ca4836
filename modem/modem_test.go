package modem_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"
	"i4.energy/across/espgw/modem"
)

func TestModemNew(t *testing.T) {
	t.Run("Initialization Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTransport := modem.NewMockTransport(ctrl)
		mockDialer := modem.NewMockDialer(ctrl)

		gomock.InOrder(slices.Concat(
			[]any{
				mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil),
			},
			NewMockSequence(mockTransport).AT().Build(),
		)...)

		config, err := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			WithDeadline(modem.NewTestDeadline()).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		m, err := modem.New(context.Background(), config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m == nil {
			t.Fatal("New() should return valid modem on success")
		}

		// Clean up
		mockTransport.EXPECT().Close().Return(nil)
		if err := m.Close(); err != nil {
			t.Errorf("unexpected error from Close(): %v", err)
		}
	})

	t.Run("Probe failure closes the transport", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTransport := modem.NewMockTransport(ctrl)
		mockDialer := modem.NewMockDialer(ctrl)

		gomock.InOrder(slices.Concat(
			[]any{
				mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil),
			},
			NewMockSequence(mockTransport).ATError().Build(),
			[]any{
				mockTransport.EXPECT().Close(),
			},
		)...)

		config, err := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			WithDeadline(modem.NewTestDeadline()).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		m, err := modem.New(context.Background(), config)
		if !errors.Is(err, modem.ErrFailure) {
			t.Errorf("expected ErrFailure, got: %v", err)
		}
		if m != nil {
			t.Error("New() should return nil modem when error occurs")
		}
	})

	t.Run("Unexpected probe reply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTransport := modem.NewMockTransport(ctrl)
		mockDialer := modem.NewMockDialer(ctrl)

		gomock.InOrder(slices.Concat(
			[]any{
				mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil),
			},
			NewMockSequence(mockTransport).Exchange("AT", "AT\r\nbusy p...\r\nOK\r\n").Build(),
			[]any{
				mockTransport.EXPECT().Close(),
			},
		)...)

		config, _ := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			WithDeadline(modem.NewTestDeadline()).
			Build()

		m, err := modem.New(context.Background(), config)
		if err == nil {
			t.Error("expected error for unexpected probe reply")
		}
		if m != nil {
			t.Error("New() should return nil modem when error occurs")
		}
	})

	t.Run("Dialer error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDialer := modem.NewMockDialer(ctrl)
		mockDialer.EXPECT().Dial(gomock.Any()).Return(nil, errors.New("connection failed"))

		config, err := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		m, err := modem.New(context.Background(), config)
		if err == nil {
			t.Error("expected error from dialer failure")
		}
		if m != nil {
			t.Error("New() should return nil modem when dialer fails")
		}
	})

	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		m, err := modem.New(context.Background(), modem.Config{})
		if !errors.Is(err, modem.ErrNoDialer) {
			t.Errorf("expected ErrNoDialer from New(), got: %v", err)
		}
		if m != nil {
			t.Error("New() should return nil modem when no dialer provided")
		}
	})

	t.Run("ErrNotInitialized on nil transport", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDialer := modem.NewMockDialer(ctrl)
		mockDialer.EXPECT().Dial(gomock.Any()).Return(nil, nil)

		config, err := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		_, err = modem.New(context.Background(), config)
		if !errors.Is(err, modem.ErrNotInitialized) {
			t.Errorf("expected ErrNotInitialized from New(), got: %v", err)
		}
	})
}

func TestModemClose(t *testing.T) {
	t.Run("Returns transport error on close failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTransport := modem.NewMockTransport(ctrl)
		mockDialer := modem.NewMockDialer(ctrl)

		closeError := errors.New("transport close failed")
		gomock.InOrder(
			mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil),
			mockTransport.EXPECT().Close().Return(closeError),
		)

		config, _ := modem.NewConfigBuilder().
			WithDialer(mockDialer).
			WithInitProbe(false).
			Build()

		m, err := modem.New(context.Background(), config)
		if err != nil {
			t.Fatalf("unexpected error from New(): %v", err)
		}
		if err := m.Close(); err != closeError {
			t.Errorf("expected transport error, got: %v", err)
		}
	})

	t.Run("ErrAlreadyClosed on double close", func(t *testing.T) {
		m, _, _ := newTestModem(t)

		if err := m.Close(); err != nil {
			t.Errorf("first close should succeed, got error: %v", err)
		}
		if err := m.Close(); err != modem.ErrAlreadyClosed {
			t.Errorf("expected ErrAlreadyClosed on second close, got: %v", err)
		}
	})

	t.Run("Operations fail after close", func(t *testing.T) {
		m, transport, _ := newTestModem(t)
		m.Close()

		if _, err := m.Probe(context.Background()); !errors.Is(err, modem.ErrAlreadyClosed) {
			t.Errorf("Probe: expected ErrAlreadyClosed, got: %v", err)
		}
		if _, err := m.Send(context.Background(), "hi"); !errors.Is(err, modem.ErrAlreadyClosed) {
			t.Errorf("Send: expected ErrAlreadyClosed, got: %v", err)
		}
		if _, err := m.Receive(context.Background()); !errors.Is(err, modem.ErrAlreadyClosed) {
			t.Errorf("Receive: expected ErrAlreadyClosed, got: %v", err)
		}
		if err := m.PowerOn(); !errors.Is(err, modem.ErrAlreadyClosed) {
			t.Errorf("PowerOn: expected ErrAlreadyClosed, got: %v", err)
		}
		if len(transport.Writes()) != 0 {
			t.Errorf("nothing should be written after close, got %q", transport.Writes())
		}
	})
}

type poweredTransport struct {
	*modem.TestTransport
	line modem.PowerLine
}

func (p poweredTransport) PowerLine() modem.PowerLine { return p.line }

func TestModemPower(t *testing.T) {
	t.Run("Configured power line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		line := modem.NewMockPowerLine(ctrl)
		gomock.InOrder(
			line.EXPECT().SetHigh().Return(nil),
			line.EXPECT().SetLow().Return(nil),
		)

		m, _, _ := newTestModem(t, func(b *modem.ConfigBuilder) { b.WithPowerLine(line) })

		if err := m.PowerOn(); err != nil {
			t.Errorf("unexpected error from PowerOn(): %v", err)
		}
		if err := m.PowerOff(); err != nil {
			t.Errorf("unexpected error from PowerOff(): %v", err)
		}
	})

	t.Run("Power line error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		lineErr := errors.New("ioctl failed")
		line := modem.NewMockPowerLine(ctrl)
		line.EXPECT().SetHigh().Return(lineErr)

		m, _, _ := newTestModem(t, func(b *modem.ConfigBuilder) { b.WithPowerLine(line) })

		if err := m.PowerOn(); err != lineErr {
			t.Errorf("expected power line error, got: %v", err)
		}
	})

	t.Run("Falls back to the transport power line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		line := modem.NewMockPowerLine(ctrl)
		line.EXPECT().SetHigh().Return(nil)

		transport := poweredTransport{TestTransport: modem.NewTestTransport(), line: line}
		config, err := modem.NewConfigBuilder().
			WithDialer(modem.DialerFunc(func(context.Context) (modem.Transport, error) {
				return transport, nil
			})).
			WithInitProbe(false).
			Build()
		if err != nil {
			t.Fatalf("unexpected error from Build(): %v", err)
		}
		m, err := modem.New(context.Background(), config)
		if err != nil {
			t.Fatalf("unexpected error from New(): %v", err)
		}
		defer m.Close()

		if err := m.PowerOn(); err != nil {
			t.Errorf("unexpected error from PowerOn(): %v", err)
		}
	})

	t.Run("ErrNoPowerLine without a line", func(t *testing.T) {
		m, _, _ := newTestModem(t)

		if err := m.PowerOn(); !errors.Is(err, modem.ErrNoPowerLine) {
			t.Errorf("expected ErrNoPowerLine, got: %v", err)
		}
		if err := m.PowerOff(); !errors.Is(err, modem.ErrNoPowerLine) {
			t.Errorf("expected ErrNoPowerLine, got: %v", err)
		}
	})
}

func TestModemSerializesCommands(t *testing.T) {
	m, transport, _ := newTestModem(t)

	const callers = 10
	for i := 0; i < callers; i++ {
		transport.Reply("AT\r\nOK\r\n")
	}

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := m.Probe(context.Background())
			if err == nil && !ok {
				err = errors.New("probe not acknowledged")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent probe failed: %v", err)
		}
	}
	if got := len(transport.Writes()); got != callers {
		t.Errorf("expected %d writes, got %d", callers, got)
	}
}
