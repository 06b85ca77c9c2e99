// Command issue-token prints a signed access token for local testing.
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/issue-token -id u1 -username alice -role teacher
package main

import (
	"LearnStream/internal/config"
	"LearnStream/internal/models"
	"LearnStream/internal/service/auth"
	"flag"
	"fmt"
	"log"
)

func main() {
	var user models.ActingUser
	flag.StringVar(&user.ID, "id", "", "user id")
	flag.StringVar(&user.Username, "username", "", "user name")
	flag.StringVar(&user.Role, "role", models.StudentRole, "admin, teacher or student")
	flag.Parse()

	if user.ID == "" || user.Username == "" {
		log.Fatal("-id and -username are required")
	}
	if !models.ValidRole(user.Role) {
		log.Fatalf("unknown role %q", user.Role)
	}

	cfg := config.MustLoad()
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	token, err := jwtManager.GenerateAccessToken(user)
	if err != nil {
		log.Fatalf("sign token: %s", err)
	}
	fmt.Println(token)
}
