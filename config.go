package atmgo

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Snowflake struct {
		Node int64 `yaml:"node"`
	} `yaml:"snowflake"`
	Limits struct {
		CreateAccount int64 `yaml:"create_account"`
		DeleteAccount int64 `yaml:"delete_account"`
		Apply         int64 `yaml:"apply"`
		Balance       int64 `yaml:"balance"`
		Statement     int64 `yaml:"statement"`
		TimeoutMS     int64 `yaml:"timeout_ms"`
	} `yaml:"limits"`
	Breaker struct {
		MaxRequests uint32 `yaml:"max_requests"`
		IntervalMS  int64  `yaml:"interval_ms"`
		TimeoutMS   int64  `yaml:"timeout_ms"`
	} `yaml:"breaker"`
}
