/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package decentralized

import (
	"io"
	"math/big"

	"github.com/fentec-project/dmcfe/data"
	"github.com/fentec-project/dmcfe/dsum"
	"github.com/fentec-project/dmcfe/internal/errs"
	"github.com/fentec-project/dmcfe/label"
)

// State is a DMCFE client's lifecycle stage. A client is created
// Uninitialized, publishes its DSum key to reach KeysPublished, and becomes
// Ready once it has the full peer set and has derived its DMCFE key.
// Encrypt and PartialKeyGen are self-loops on Ready; there is no transition
// back.
type State int

const (
	Uninitialized State = iota
	KeysPublished
	Ready
)

// Client drives one participant through the DMCFE lifecycle: DSum key
// publication, DMCFE setup once the peer set is known, then any number of
// encryptions and partial-key-generation calls under that key.
type Client struct {
	state State
	id    int
	dsKey *dsum.KeyPair
	key   *PrivateKey
}

// NewClient samples this client's DSum key pair. The resulting public key
// must be broadcast to every peer before calling Setup.
func NewClient(rand io.Reader, id int) (*Client, error) {
	kp, err := dsum.ClientSetup(rand)
	if err != nil {
		return nil, err
	}
	return &Client{state: KeysPublished, id: id, dsKey: kp}, nil
}

// PublicKey returns this client's DSum public key, for broadcast to peers.
func (c *Client) PublicKey() *dsum.PublicKey {
	return c.dsKey.Public
}

// State reports the client's current lifecycle stage.
func (c *Client) State() State {
	return c.state
}

// Setup derives this client's DMCFE private key from the full DSum public
// key set (including this client's own key), moving the client to Ready.
func (c *Client) Setup(rand io.Reader, peers []*dsum.PublicKey) error {
	if c.state != KeysPublished {
		return errs.Wrap(errs.PreconditionViolation, "client is in state %d, expected KeysPublished", c.state)
	}

	key, err := Setup(rand, c.dsKey.Private, c.dsKey.Public, peers)
	if err != nil {
		return err
	}

	c.key = key
	c.state = Ready
	return nil
}

// Encrypt encrypts x under label l. The client must be Ready.
func (c *Client) Encrypt(x *big.Int, l *label.Label) (CipherText, error) {
	if c.state != Ready {
		return CipherText{}, errs.Wrap(errs.PreconditionViolation, "client is in state %d, expected Ready", c.state)
	}
	return Encrypt(c.key, x, l), nil
}

// PartialKeyGen computes this client's contribution to the functional key
// for weight vector y. The client must be Ready.
func (c *Client) PartialKeyGen(y data.Vector) (*PartialDecryptionKey, error) {
	if c.state != Ready {
		return nil, errs.Wrap(errs.PreconditionViolation, "client is in state %d, expected Ready", c.state)
	}
	return PartialKeyGen(c.key, c.id, y)
}
