// Package io reads the explorer's inputs and writes layout snapshots.
//
// # Overview
//
// Two JSON documents describe a system: a dependency structure matrix and a
// hierarchical clustering of its variables. [ReadMatrix] and
// [ReadClustering] decode them into [model.Matrix] and [model.Clustering];
// [model.Build] turns the pair into a graph.
//
// # Matrix Format
//
//	{
//	  "variables": ["app.Main", "app.Store", "lib.Cache"],
//	  "cells": [
//	    {"src": 0, "dest": 1, "values": {"Call": 3, "Cochange": 1}},
//	    {"src": "1", "dest": "2", "values": {"Use": 1}}
//	  ]
//	}
//
// src and dest index into variables; they may be JSON numbers or numeric
// strings. Each key of values is a weight name.
//
// # Clustering Format
//
//	{
//	  "structure": [
//	    {"@type": "group", "name": "app", "nested": [
//	      {"@type": "item", "name": "app.Main"},
//	      {"@type": "item", "name": "app.Store"}
//	    ]},
//	    {"@type": "group", "name": "lib", "nested": [
//	      {"@type": "item", "name": "lib.Cache"}
//	    ]}
//	  ]
//	}
//
// Groups nest arbitrarily. Entries of any other @type are ignored.
//
// # Layout Export
//
// [WriteLayout] writes a [Layout]: node positions, visible edges with their
// weights, groups and the current selection. A layout is a snapshot for
// external tools; it is never read back.
//
// [model.Matrix]: github.com/matzehuels/depweb/pkg/model.Matrix
// [model.Clustering]: github.com/matzehuels/depweb/pkg/model.Clustering
// [model.Build]: github.com/matzehuels/depweb/pkg/model.Build
package io
