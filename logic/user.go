package logic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/mr-tron/base58"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// UserLogic handles identity: verifying upstream identity tokens, minting
// session JWTs, and guest device keys.
type UserLogic struct {
	userStore      UserStore
	secret         string
	upstreamSecret string
	expHour        int
}

func NewUserLogic(userStore UserStore, secret, upstreamSecret string, expHour int) *UserLogic {
	return &UserLogic{
		userStore:      userStore,
		secret:         secret,
		upstreamSecret: upstreamSecret,
		expHour:        expHour,
	}
}

// GetUser retrieves user info
func (l *UserLogic) GetUser(userKey string) (*models.User, error) {
	return l.userStore.GetUserByKey(userKey)
}

// verifyUpstreamToken checks an identity-provider JWT and extracts the
// subject and email claims.
func (l *UserLogic) verifyUpstreamToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(l.upstreamSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid identity token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid identity token claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return "", "", errors.New("identity token missing subject")
	}
	return sub, email, nil
}

func (l *UserLogic) generateJWT(userKey string, guest bool) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(l.expHour) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_key": userKey,
		"guest":    guest,
		"exp":      expireAt.Unix(),
	})
	tokenString, err := token.SignedString([]byte(l.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expireAt, nil
}

// Login exchanges an upstream identity token for a session JWT. The user
// aggregate itself is created or reconciled by the session start that
// follows; an account that has never started a session simply has no record
// yet.
func (l *UserLogic) Login(identityToken string) (*models.User, string, string, time.Time, error) {
	userKey, email, err := l.verifyUpstreamToken(identityToken)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}

	user, err := l.userStore.GetUserByKey(userKey)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, "", "", time.Time{}, err
		}
		user = nil
	}

	token, expireAt, err := l.generateJWT(userKey, false)
	if err != nil {
		return nil, "", "", time.Time{}, err
	}
	return user, email, token, expireAt, nil
}

// GuestLogin mints a session for an unauthenticated device. An empty device
// key gets a fresh one; a carried key is validated so a tampered value
// cannot smuggle arbitrary identifiers.
func (l *UserLogic) GuestLogin(deviceKey string) (string, string, time.Time, error) {
	if deviceKey == "" {
		deviceKey = NewDeviceKey()
	} else if _, err := base58.Decode(deviceKey); err != nil {
		return "", "", time.Time{}, errors.New("invalid device key")
	}

	token, expireAt, err := l.generateJWT(deviceKey, true)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return deviceKey, token, expireAt, nil
}

// NewDeviceKey generates a base58 guest device identifier.
func NewDeviceKey() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base58.Encode(buf)
}
