package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/config"
	"github.com/oksasatya/go-member-portal/internal/domain/repository"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	userRepo     repository.UserRepository
	sessionStore repository.SessionStore
	signer       *helpers.SessionTokenSigner

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetUserRepo(r repository.UserRepository)   { userRepo = r }
func GetUserRepo() repository.UserRepository    { return userRepo }
func SetSessionStore(s repository.SessionStore) { sessionStore = s }
func GetSessionStore() repository.SessionStore  { return sessionStore }

func SetSigner(s *helpers.SessionTokenSigner) { signer = s }
func GetSigner() *helpers.SessionTokenSigner {
	if signer != nil {
		return signer
	}
	return helpers.NewSessionTokenSigner(cfg.SessionSecret)
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
