// Package sftpclient uploads operator exports to an SFTP drop.
package sftpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"path"
	"strconv"
	"strings"

	"github.com/kakascoaching/site/internal/platform/timeouts"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultPort = 22

// Config describes the SFTP target.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	RemoteDir string
	// KnownHosts is an OpenSSH known_hosts file used to verify the server.
	KnownHosts string
	// InsecureIgnoreHostKey skips host verification; local testing only.
	InsecureIgnoreHostKey bool
}

// Validate reports missing settings.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if strings.TrimSpace(c.User) == "" {
		missing = append(missing, "user")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("sftp: missing %s", strings.Join(missing, ", "))
	}
	if strings.TrimSpace(c.KnownHosts) == "" && !c.InsecureIgnoreHostKey {
		return errors.New("sftp: known hosts file is required")
	}
	return nil
}

func (c Config) addr() string {
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return net.JoinHostPort(strings.TrimSpace(c.Host), strconv.Itoa(port))
}

func (c Config) remoteDir() string {
	dir := strings.TrimSpace(c.RemoteDir)
	if dir == "" {
		return "/"
	}
	return dir
}

func (c Config) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	callback, err := knownhosts.New(c.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: load known hosts: %w", err)
	}
	return callback, nil
}

// Upload writes src to name inside the configured remote directory and
// returns the remote path.
func Upload(ctx context.Context, cfg Config, name string, src io.Reader) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	callback, err := cfg.hostKeyCallback()
	if err != nil {
		return "", err
	}
	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: callback,
		Timeout:         timeouts.SFTPDial,
	}

	addr := cfg.addr()
	dialer := net.Dialer{Timeout: timeouts.SFTPDial}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("sftp: dial %s: %w", addr, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if err != nil {
		_ = conn.Close()
		return "", fmt.Errorf("sftp: handshake %s: %w", addr, err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)
	defer sshClient.Close()

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		return "", fmt.Errorf("sftp: new client: %w", err)
	}
	defer client.Close()

	return put(client, cfg.remoteDir(), name, src)
}

func put(client *sftp.Client, dir, name string, src io.Reader) (string, error) {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "", errors.New("sftp: remote file name is required")
	}
	if err := client.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("sftp: mkdir %s: %w", dir, err)
	}
	remotePath := path.Join(dir, name)
	dst, err := client.Create(remotePath)
	if err != nil {
		return "", fmt.Errorf("sftp: create %s: %w", remotePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("sftp: write %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("sftp: close %s: %w", remotePath, err)
	}
	return remotePath, nil
}
