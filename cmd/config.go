package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool

	KafkaHost             string
	KafkaConsumerGroup    string
	KafkaShipmentsChanged string

	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailFrom         string
}
