// Command onsocial-keygen generates the RSA signing key pair the
// server expects, printed as base64 PKCS8 (private) and PKIX (public)
// blobs ready for ONSOCIAL_PRIVATE_KEY / ONSOCIAL_PUBLIC_KEY.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
)

func main() {
	bits := flag.Int("bits", 2048, "RSA key size")
	flag.Parse()

	key, err := rsa.GenerateKey(rand.Reader, *bits)
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		log.Fatalf("marshal private key: %v", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		log.Fatalf("marshal public key: %v", err)
	}

	fmt.Printf("ONSOCIAL_PRIVATE_KEY=%s\n", base64.StdEncoding.EncodeToString(privateDER))
	fmt.Printf("ONSOCIAL_PUBLIC_KEY=%s\n", base64.StdEncoding.EncodeToString(publicDER))
}
