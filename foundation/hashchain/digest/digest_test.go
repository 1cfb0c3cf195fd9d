package digest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/hashchain/foundation/hashchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestSum(t *testing.T) {
	t.Log("Given the need to hash arbitrary byte strings.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen hashing the same input twice.", testID)
		{
			d1 := digest.Sum([]byte("hello world"))
			d2 := digest.Sum([]byte("hello world"))

			if d1 != d2 {
				t.Fatalf("\t%s\tTest %d:\tShould get the same digest for the same input.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get the same digest for the same input.", success, testID)

			d3 := digest.Sum([]byte("hello worlds"))
			if d1 == d3 {
				t.Fatalf("\t%s\tTest %d:\tShould get a different digest for different input.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get a different digest for different input.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen formatting a digest as hex.", testID)
		{
			hexDigest := digest.Sum([]byte("hello world")).Hex()

			if len(hexDigest) != digest.HexLen {
				t.Fatalf("\t%s\tTest %d:\tShould get %d hex characters: got %d.", failed, testID, digest.HexLen, len(hexDigest))
			}
			t.Logf("\t%s\tTest %d:\tShould get %d hex characters.", success, testID, digest.HexLen)

			if hexDigest != strings.ToLower(hexDigest) {
				t.Fatalf("\t%s\tTest %d:\tShould get lowercase hex.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get lowercase hex.", success, testID)

			d, err := digest.Parse(hexDigest)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to parse the hex form back: %s.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to parse the hex form back.", success, testID)

			if d != digest.Sum([]byte("hello world")) {
				t.Fatalf("\t%s\tTest %d:\tShould round trip through the hex form.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould round trip through the hex form.", success, testID)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	type table struct {
		name      string
		hexDigest string
	}

	tt := []table{
		{name: "empty", hexDigest: ""},
		{name: "short", hexDigest: "abc123"},
		{name: "long", hexDigest: strings.Repeat("0", digest.HexLen+2)},
		{name: "nonhex", hexDigest: strings.Repeat("z", digest.HexLen)},
		{name: "prefixed", hexDigest: "0x" + strings.Repeat("0", digest.HexLen-2)},
	}

	t.Log("Given the need to reject digests that are not well formed.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen parsing %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					if _, err := digest.Parse(tst.hexDigest); !errors.Is(err, digest.ErrMalformedDigest) {
						t.Fatalf("\t%s\tTest %d:\tShould get ErrMalformedDigest: got %v.", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get ErrMalformedDigest.", success, testID)

					if _, err := digest.SatisfiesTarget(tst.hexDigest, digest.DifficultyTarget()); !errors.Is(err, digest.ErrMalformedDigest) {
						t.Fatalf("\t%s\tTest %d:\tShould get ErrMalformedDigest from the predicate: got %v.", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get ErrMalformedDigest from the predicate.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestSatisfiesTarget(t *testing.T) {
	type table struct {
		name      string
		hexDigest string
		satisfies bool
	}

	tt := []table{
		{name: "zero", hexDigest: strings.Repeat("0", 64), satisfies: true},
		{name: "below", hexDigest: "0000" + "1" + strings.Repeat("0", 59), satisfies: true},
		{name: "justbelow", hexDigest: "0000" + strings.Repeat("f", 59) + "e", satisfies: true},
		{name: "equal", hexDigest: "0000" + strings.Repeat("f", 60), satisfies: false},
		{name: "above", hexDigest: "0001" + strings.Repeat("0", 60), satisfies: false},
		{name: "max", hexDigest: strings.Repeat("f", 64), satisfies: false},
	}

	t.Log("Given the need to compare digests against the difficulty target.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking a digest %s the target.", testID, tst.name)
			{
				f := func(t *testing.T) {
					ok, err := digest.SatisfiesTarget(tst.hexDigest, digest.DifficultyTarget())
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould not get an error: %s.", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould not get an error.", success, testID)

					if ok != tst.satisfies {
						t.Fatalf("\t%s\tTest %d:\tShould get %v from the predicate: got %v.", failed, testID, tst.satisfies, ok)
					}
					t.Logf("\t%s\tTest %d:\tShould get %v from the predicate.", success, testID, tst.satisfies)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestDifficultyTargetIsImmutable(t *testing.T) {
	t.Log("Given the need to protect the shared difficulty target.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mutating a returned target value.", testID)
		{
			target := digest.DifficultyTarget()
			target.SetInt64(0)

			fresh := digest.DifficultyTarget()
			if fresh.Sign() == 0 {
				t.Fatalf("\t%s\tTest %d:\tShould hand out copies of the target.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould hand out copies of the target.", success, testID)

			if ok, err := digest.SatisfiesTarget(strings.Repeat("0", 64), fresh); err != nil || !ok {
				t.Fatalf("\t%s\tTest %d:\tShould still satisfy with a fresh target: ok[%v] err[%v].", failed, testID, ok, err)
			}
			t.Logf("\t%s\tTest %d:\tShould still satisfy with a fresh target.", success, testID)
		}
	}
}
