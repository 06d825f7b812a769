package util

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadEnvFor reads a single environment variable, loading .env once if present.
func LoadEnvFor(v string) (x string) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	x = os.Getenv(v)

	return
}

// ConnectDB opens the MongoDB connection and pings it before returning.
func ConnectDB() *mongo.Client {
	log.Println("starting MongoDB connection..")
	client, err := mongo.NewClient(options.Client().ApplyURI(LoadEnvFor("DATABASE_URL")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("MongoDB connection successful")
	return client
}

// GetCollection returns a collection handle from the catalog database.
func GetCollection(client *mongo.Client, name string) *mongo.Collection {
	dbName := LoadEnvFor("DATABASE_NAME")
	if dbName == "" {
		dbName = "vendura"
	}
	return client.Database(dbName).Collection(name)
}

// ConnectRedis opens the redis connection used for sessions, the rate
// limiter and the category tree cache.
func ConnectRedis() *redis.Client {
	redisUrl := LoadEnvFor("REDIS_URL")
	log.Printf("starting redis connection..%v", redisUrl)
	addr, err := redis.ParseURL(redisUrl)
	if err != nil {
		log.Fatal(err)
	}

	client := redis.NewClient(addr)

	log.Println("redis connection successful..")
	return client
}
