package vocab

import "strings"

// Seed corpora for the lazily-trained bootstrap vocabularies in vocab.go.
// Each is a small, repetitive sample chosen to keep enough repeated byte
// pairs alive through several hundred bpe.TrainBytes merges: a corpus built
// from unique prose rarely repeats a bigram twice, which would stall the
// naive trainer's "most frequent pair" search almost immediately.

const textParagraph = `The quick brown fox jumps over the lazy dog. ` +
	`The dog did not notice the fox at first, but then it began to bark. ` +
	`A good plan today is better than a perfect plan tomorrow, the old saying goes. ` +
	`Every morning the sun rises over the hills and the birds begin to sing. ` +
	`She walked to the store and bought bread, milk, and a little bit of cheese. ` +
	`We talked about the weather, the news, and the price of everything these days. ` +
	`The children played in the park while their parents watched from the bench. ` +
	`In the end, it does not matter how you start, it matters how you finish. `

var textCorpus = []byte(strings.Repeat(textParagraph, 20))

const goSnippet = `package main

import (
	"fmt"
	"errors"
)

func main() {
	for i := 0; i < 10; i++ {
		if err := doSomething(i); err != nil {
			fmt.Println("error:", err)
			return
		}
	}
}

func doSomething(n int) error {
	if n < 0 {
		return errors.New("negative value")
	}
	result := n * 2
	fmt.Println(result)
	return nil
}

type Server struct {
	Name    string
	Timeout int
}

func (s *Server) Start() error {
	if s.Name == "" {
		return fmt.Errorf("server: missing name")
	}
	return nil
}
`

var goCorpus = []byte(strings.Repeat(goSnippet, 20))

const pythonSnippet = `import os
import sys

def main():
    for i in range(10):
        try:
            do_something(i)
        except ValueError as e:
            print("error:", e)
            return

def do_something(n):
    if n < 0:
        raise ValueError("negative value")
    result = n * 2
    print(result)
    return result

class Server:
    def __init__(self, name, timeout):
        self.name = name
        self.timeout = timeout

    def start(self):
        if not self.name:
            raise ValueError("server: missing name")
        return True
`

var pythonCorpus = []byte(strings.Repeat(pythonSnippet, 20))

const jsSnippet = `const http = require('http');

function main() {
  for (let i = 0; i < 10; i++) {
    try {
      doSomething(i);
    } catch (err) {
      console.log('error:', err);
      return;
    }
  }
}

function doSomething(n) {
  if (n < 0) {
    throw new Error('negative value');
  }
  const result = n * 2;
  console.log(result);
  return result;
}

class Server {
  constructor(name, timeout) {
    this.name = name;
    this.timeout = timeout;
  }

  start() {
    if (!this.name) {
      throw new Error('server: missing name');
    }
    return true;
  }
}
`

var jsCorpus = []byte(strings.Repeat(jsSnippet, 20))
