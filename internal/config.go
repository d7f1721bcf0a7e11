package internal

import (
	"chat-server/errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	Host             string        `env:"HOST,default=127.0.0.1" validate:"required"`
	Port             int           `env:"PORT,default=12345" validate:"min=1,max=65535"`
	UsersFilepath    string        `env:"USERS_FILEPATH,default=users.txt" validate:"required"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	ReadBufferSize   int           `env:"READ_BUFFER_SIZE,default=1024" validate:"min=64,max=65536"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,default=0s" validate:"gte=0"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	StatusInterval   time.Duration `env:"STATUS_INTERVAL,default=30s" validate:"gt=0"`
	JournalFilepath  string        `env:"JOURNAL_FILEPATH"`
	CensoredWordsDir string        `env:"CENSORED_WORDS_DIR"`
	CensorCharacter  string        `env:"CENSOR_CHARACTER,default=*" validate:"required"`
	DebugPort        int           `env:"DEBUG_PORT,default=8081" validate:"min=1,max=65535"`
}

// LoadConfig reads an optional .env file, then the environment, and validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if _, err := CharacterRune(c.CensorCharacter); err != nil {
		return err
	}
	return nil
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"%w: CENSOR_CHARACTER must be a single character, got %q",
			errors.ErrInvalidConfig, str,
		)
	}
	return r[0], nil
}
