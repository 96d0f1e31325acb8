package rosapi

import (
	"crypto/tls"
	"time"
)

// options holds the configuration shared by Transport, Protocol and Dial.
type options struct {
	encoding Encoding
	logger   Logger

	timeout   time.Duration // per operation deadline, 0 disables
	tlsConfig *tls.Config   // used by Dial only
}

// Option is a function that configures connection options.
type Option func(*options)

// EncodingOption sets the text encoding of words. Defaults to ASCII.
func EncodingOption(enc Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// LoggerOption sets the logger.
// If not set, the default slog logger will be used.
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// TimeoutOption sets a deadline applied before every socket read and write,
// and the connect timeout of Dial. Expired deadlines surface as *ConnError.
func TimeoutOption(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// TLSConfigOption makes Dial open an api-ssl connection with cfg.
func TLSConfigOption(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// buildOptions applies opt over the defaults.
func buildOptions(opt []Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}

	if opts.encoding == nil {
		opts.encoding = ASCII
	}
	if opts.logger == nil {
		opts.logger = defaultLogger()
	}
	if opts.timeout < 0 {
		opts.timeout = 0
	}
	return opts
}
