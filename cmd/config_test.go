package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const sampleConfig = `
env: development
http_server:
  port: 9090
  allowed_origins: "*"
  read_header_timeout: 5s
  read_timeout: 15s
database:
  source: postgres://localhost/placement
  max_open_conns: 4
  max_idle_conns: 2
  conn_max_lifetime: 30m
  conn_max_idle_time: 5m
security:
  jwt_secret: 0123456789abcdef0123456789abcdef
  session_token_duration: 2h
  bcrypt_cost: 10
admin:
  username: admin
  email: admin@placement.local
  password: admin12345
storage:
  resume_dir: ./uploads
observability:
  metrics:
    enabled: true
    path: /metrics
  logging:
    level: info
    format: json
`

var _ = Describe("loadConfig", func() {
	var dir string

	setenv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	write := func(name, body string) {
		Expect(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600)).To(Succeed())
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("reads config.yml", func() {
		write("config.yml", sampleConfig)

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(9090))
		Expect(cfg.Security.SessionTokenDuration).To(Equal(2 * time.Hour))
		Expect(cfg.Admin.Email).To(Equal("admin@placement.local"))
		Expect(cfg.Observability.Metrics.Path).To(Equal("/metrics"))
	})

	It("lets ENV_ variables override file values", func() {
		write("config.yml", sampleConfig)
		setenv("ENV_HTTP_SERVER_PORT", "7070")

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(7070))
	})

	It("loads a .env file before reading the config", func() {
		write("config.yml", sampleConfig)
		write(".env", "ENV_ADMIN_USERNAME=dotenv-admin\n")
		DeferCleanup(os.Unsetenv, "ENV_ADMIN_USERNAME")

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Admin.Username).To(Equal("dotenv-admin"))
	})

	It("rejects a short signing secret", func() {
		write("config.yml", strings.Replace(sampleConfig, "0123456789abcdef0123456789abcdef", "short", 1))

		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("jwt secret")))
	})

	It("fails without a config file", func() {
		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("error reading config")))
	})
})
